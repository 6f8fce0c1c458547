package memory

import (
	"context"
	"errors"
	"testing"

	"sniper-agent/internal/storage"
)

func TestPositionStore_OpenCloseLifecycle(t *testing.T) {
	store := NewPositionStore()
	ctx := context.Background()

	if err := store.Open(ctx, "mint123", 10_000_000, 20, 1000); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	open, err := store.HasOpen(ctx, "mint123")
	if err != nil {
		t.Fatalf("HasOpen failed: %v", err)
	}
	if !open {
		t.Fatal("expected open position")
	}

	p, err := store.GetOpen(ctx, "mint123")
	if err != nil {
		t.Fatalf("GetOpen failed: %v", err)
	}
	if p.EntryAmount != 10_000_000 || p.MoonbagPercent != 20 {
		t.Errorf("position = %+v", p)
	}
	if !p.IsOpen() {
		t.Error("position should report open")
	}

	if err := store.Close(ctx, "mint123", 2000); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	open, err = store.HasOpen(ctx, "mint123")
	if err != nil {
		t.Fatalf("HasOpen failed: %v", err)
	}
	if open {
		t.Error("expected no open position after close")
	}
}

func TestPositionStore_DuplicatePosition(t *testing.T) {
	store := NewPositionStore()
	ctx := context.Background()

	if err := store.Open(ctx, "mint123", 100, 0, 1000); err != nil {
		t.Fatalf("first Open failed: %v", err)
	}

	err := store.Open(ctx, "mint123", 200, 0, 2000)
	if !errors.Is(err, storage.ErrDuplicatePosition) {
		t.Errorf("expected ErrDuplicatePosition, got %v", err)
	}
}

func TestPositionStore_NoOpenPosition(t *testing.T) {
	store := NewPositionStore()
	ctx := context.Background()

	err := store.Close(ctx, "mint123", 1000)
	if !errors.Is(err, storage.ErrNoOpenPosition) {
		t.Errorf("expected ErrNoOpenPosition, got %v", err)
	}
}

func TestPositionStore_ReopenAfterClose(t *testing.T) {
	store := NewPositionStore()
	ctx := context.Background()

	if err := store.Open(ctx, "mint123", 100, 20, 1000); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Close(ctx, "mint123", 2000); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// The moonbag stays in the wallet but the ledger position is closed,
	// so a new position may open for the same address.
	if err := store.Open(ctx, "mint123", 300, 20, 3000); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
}
