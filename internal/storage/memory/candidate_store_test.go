package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"sniper-agent/internal/storage"
)

func TestCandidateStore_UpsertAndGet(t *testing.T) {
	store := NewCandidateStore()
	ctx := context.Background()

	err := store.Upsert(ctx, "mint123", []string{"WIF"}, "cryptocaller", 1000)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := store.Get(ctx, "mint123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Address != "mint123" {
		t.Errorf("Address = %s, want mint123", got.Address)
	}
	if !reflect.DeepEqual(got.Symbols, []string{"WIF"}) {
		t.Errorf("Symbols = %v, want [WIF]", got.Symbols)
	}
	if got.FirstSeenAt != 1000 {
		t.Errorf("FirstSeenAt = %d, want 1000", got.FirstSeenAt)
	}
}

func TestCandidateStore_UpsertIsIdempotent(t *testing.T) {
	store := NewCandidateStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, "mint123", []string{"WIF"}, "caller1", 1000); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	// Second sighting: same symbol, new symbol, new source account.
	if err := store.Upsert(ctx, "mint123", []string{"WIF", "BONK"}, "caller2", 2000); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	got, err := store.Get(ctx, "mint123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(got.Symbols, []string{"WIF", "BONK"}) {
		t.Errorf("Symbols = %v, want [WIF BONK]", got.Symbols)
	}
	if !reflect.DeepEqual(got.SourceAccounts, []string{"caller1", "caller2"}) {
		t.Errorf("SourceAccounts = %v, want [caller1 caller2]", got.SourceAccounts)
	}
	// First sighting timestamp is never mutated.
	if got.FirstSeenAt != 1000 {
		t.Errorf("FirstSeenAt = %d, want 1000", got.FirstSeenAt)
	}
}

func TestCandidateStore_NotFound(t *testing.T) {
	store := NewCandidateStore()

	_, err := store.Get(context.Background(), "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCandidateStore_Exists(t *testing.T) {
	store := NewCandidateStore()
	ctx := context.Background()

	exists, err := store.Exists(ctx, "mint123")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected no candidate before upsert")
	}

	if err := store.Upsert(ctx, "mint123", nil, "caller", 1000); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	exists, err = store.Exists(ctx, "mint123")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected candidate after upsert")
	}
}
