package storage

import (
	"context"
	"fmt"
	"time"

	"sniper-agent/internal/domain"
)

// Ledger bundles the per-entity stores into the durable discovery and
// trade record the scheduler and executor work against.
type Ledger struct {
	Candidates      CandidateStore
	Assessments     AssessmentStore
	Snapshots       SnapshotStore
	SnapshotHistory SnapshotHistoryStore
	Orders          OrderStore
	Positions       PositionStore

	now func() time.Time
}

// NewLedger creates a Ledger over the given stores.
func NewLedger(candidates CandidateStore, assessments AssessmentStore, snapshots SnapshotStore, history SnapshotHistoryStore, orders OrderStore, positions PositionStore) *Ledger {
	return &Ledger{
		Candidates:      candidates,
		Assessments:     assessments,
		Snapshots:       snapshots,
		SnapshotHistory: history,
		Orders:          orders,
		Positions:       positions,
		now:             time.Now,
	}
}

// UpsertCandidate records a sighting of address with the given symbols
// from sourceAccount.
func (l *Ledger) UpsertCandidate(ctx context.Context, address string, symbols []string, sourceAccount string) error {
	return l.Candidates.Upsert(ctx, address, symbols, sourceAccount, l.now().UnixMilli())
}

// HasCandidate reports whether the address has been seen before.
func (l *Ledger) HasCandidate(ctx context.Context, address string) (bool, error) {
	return l.Candidates.Exists(ctx, address)
}

// RecordAssessment stores the latest risk score for the address.
func (l *Ledger) RecordAssessment(ctx context.Context, address string, score domain.Score) error {
	if !score.IsValid() {
		return fmt.Errorf("%w: score %v out of range", ErrInvalidInput, score.Value)
	}
	return l.Assessments.Record(ctx, &domain.RiskAssessment{
		Address:    address,
		Score:      score,
		AssessedAt: l.now().UnixMilli(),
	})
}

// RecordSnapshots stores the primary snapshot as current and appends
// every observed pair to the history.
func (l *Ledger) RecordSnapshots(ctx context.Context, snapshots []*domain.MarketSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	if err := l.Snapshots.RecordLatest(ctx, snapshots[0]); err != nil {
		return fmt.Errorf("record latest snapshot: %w", err)
	}
	if err := l.SnapshotHistory.Insert(ctx, snapshots); err != nil {
		return fmt.Errorf("append snapshot history: %w", err)
	}
	return nil
}

// LatestSnapshot retrieves the current primary snapshot for an address.
func (l *Ledger) LatestSnapshot(ctx context.Context, address string) (*domain.MarketSnapshot, error) {
	return l.Snapshots.GetLatest(ctx, address)
}

// RecordOrder persists a trade order.
func (l *Ledger) RecordOrder(ctx context.Context, o *domain.TradeOrder) error {
	return l.Orders.Insert(ctx, o)
}

// HasOpenPosition reports whether address has an open position.
func (l *Ledger) HasOpenPosition(ctx context.Context, address string) (bool, error) {
	return l.Positions.HasOpen(ctx, address)
}

// OpenPosition opens a position for address. Returns
// ErrDuplicatePosition if one is already open.
func (l *Ledger) OpenPosition(ctx context.Context, address string, entryAmount uint64, moonbagPercent int) error {
	if moonbagPercent < 0 || moonbagPercent >= 100 {
		return fmt.Errorf("%w: moonbag percent %d", ErrInvalidInput, moonbagPercent)
	}
	return l.Positions.Open(ctx, address, entryAmount, moonbagPercent, l.now().UnixMilli())
}

// ClosePosition closes the open position for address. Returns
// ErrNoOpenPosition if none is open. The moonbag fraction remaining in
// the wallet is intentionally not tracked as a new position.
func (l *Ledger) ClosePosition(ctx context.Context, address string) error {
	return l.Positions.Close(ctx, address, l.now().UnixMilli())
}
