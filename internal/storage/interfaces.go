package storage

import (
	"context"

	"sniper-agent/internal/domain"
)

// CandidateStore provides access to discovered candidates.
type CandidateStore interface {
	// Upsert creates the candidate if absent, otherwise merges new
	// symbols and the source account into the existing record.
	// Idempotent: repeating a sighting never duplicates anything.
	Upsert(ctx context.Context, address string, symbols []string, sourceAccount string, seenAt int64) error

	// Get retrieves a candidate by address. Returns ErrNotFound if absent.
	Get(ctx context.Context, address string) (*domain.Candidate, error)

	// Exists reports whether a candidate with the address is recorded.
	Exists(ctx context.Context, address string) (bool, error)
}

// AssessmentStore provides access to risk assessments, latest-wins per
// address. An Unknown score is stored as such, never as zero.
type AssessmentStore interface {
	// Record overwrites the assessment for the address.
	Record(ctx context.Context, a *domain.RiskAssessment) error

	// Get retrieves the latest assessment. Returns ErrNotFound if absent.
	Get(ctx context.Context, address string) (*domain.RiskAssessment, error)
}

// SnapshotStore holds the most recent primary-pair snapshot per address.
type SnapshotStore interface {
	// RecordLatest overwrites the current snapshot for the address.
	RecordLatest(ctx context.Context, s *domain.MarketSnapshot) error

	// GetLatest retrieves the current snapshot. Returns ErrNotFound if absent.
	GetLatest(ctx context.Context, address string) (*domain.MarketSnapshot, error)
}

// SnapshotHistoryStore appends every observed snapshot for later
// analysis. Append-only.
type SnapshotHistoryStore interface {
	// Insert appends snapshots to the history.
	Insert(ctx context.Context, snapshots []*domain.MarketSnapshot) error

	// GetByAddress retrieves all snapshots for an address, ordered by
	// observed_at ASC.
	GetByAddress(ctx context.Context, address string) ([]*domain.MarketSnapshot, error)
}

// OrderStore records submitted trade orders.
type OrderStore interface {
	// Insert adds an order record.
	Insert(ctx context.Context, o *domain.TradeOrder) error

	// GetByAddress retrieves all orders for an address, ordered by
	// submitted_at ASC.
	GetByAddress(ctx context.Context, address string) ([]*domain.TradeOrder, error)
}

// PositionStore enforces the one-open-position-per-address invariant.
// Open and Close must be atomic per address.
type PositionStore interface {
	// Open creates an open position. Returns ErrDuplicatePosition if one
	// is already open for the address.
	Open(ctx context.Context, address string, entryAmount uint64, moonbagPercent int, openedAt int64) error

	// Close marks the open position closed. Returns ErrNoOpenPosition if
	// none is open.
	Close(ctx context.Context, address string, closedAt int64) error

	// HasOpen reports whether an open position exists for the address.
	HasOpen(ctx context.Context, address string) (bool, error)

	// GetOpen retrieves the open position. Returns ErrNotFound if none.
	GetOpen(ctx context.Context, address string) (*domain.Position, error)
}
