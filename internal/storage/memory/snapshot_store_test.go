package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

func snap(address, pair string, price string, observedAt int64) *domain.MarketSnapshot {
	p, _ := decimal.NewFromString(price)
	return &domain.MarketSnapshot{
		Address:     address,
		Symbol:      "TST",
		PriceUSD:    p,
		PairAddress: pair,
		ObservedAt:  observedAt,
	}
}

func TestSnapshotStore_LatestWins(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()

	if err := store.RecordLatest(ctx, snap("mint123", "p1", "0.5", 1000)); err != nil {
		t.Fatalf("RecordLatest failed: %v", err)
	}
	if err := store.RecordLatest(ctx, snap("mint123", "p1", "0.8", 2000)); err != nil {
		t.Fatalf("RecordLatest failed: %v", err)
	}

	got, err := store.GetLatest(ctx, "mint123")
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if got.PriceUSD.String() != "0.8" || got.ObservedAt != 2000 {
		t.Errorf("got %+v, want latest snapshot", got)
	}
}

func TestSnapshotStore_NotFound(t *testing.T) {
	store := NewSnapshotStore()

	_, err := store.GetLatest(context.Background(), "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshotHistoryStore_AppendAndOrder(t *testing.T) {
	store := NewSnapshotHistoryStore()
	ctx := context.Background()

	batch := []*domain.MarketSnapshot{
		snap("mint123", "p1", "0.8", 2000),
		snap("mint123", "p1", "0.5", 1000),
		snap("other", "p2", "1.0", 1500),
	}
	if err := store.Insert(ctx, batch); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByAddress(ctx, "mint123")
	if err != nil {
		t.Fatalf("GetByAddress failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(got))
	}
	if got[0].ObservedAt != 1000 || got[1].ObservedAt != 2000 {
		t.Errorf("history not ordered by observed_at: %+v", got)
	}
}
