package postgres

import (
	"context"
	"fmt"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// PositionStore implements storage.PositionStore using PostgreSQL.
// The one-open-position-per-address invariant is enforced by a partial
// unique index on (address) WHERE closed_at IS NULL, so Open is atomic
// even across processes.
type PositionStore struct {
	pool *Pool
}

// NewPositionStore creates a new PositionStore.
func NewPositionStore(pool *Pool) *PositionStore {
	return &PositionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PositionStore = (*PositionStore)(nil)

// Open creates an open position. Returns ErrDuplicatePosition if one is
// already open for the address.
func (s *PositionStore) Open(ctx context.Context, address string, entryAmount uint64, moonbagPercent int, openedAt int64) error {
	if address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO positions (address, entry_amount, moonbag_percent, opened_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.pool.Exec(ctx, query, address, int64(entryAmount), moonbagPercent, openedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicatePosition
		}
		return fmt.Errorf("open position: %w", err)
	}
	return nil
}

// Close marks the open position closed. Returns ErrNoOpenPosition if
// none is open.
func (s *PositionStore) Close(ctx context.Context, address string, closedAt int64) error {
	query := `
		UPDATE positions
		SET closed_at = $2
		WHERE address = $1 AND closed_at IS NULL
	`

	tag, err := s.pool.Exec(ctx, query, address, closedAt)
	if err != nil {
		return fmt.Errorf("close position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNoOpenPosition
	}
	return nil
}

// HasOpen reports whether an open position exists for the address.
func (s *PositionStore) HasOpen(ctx context.Context, address string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM positions WHERE address = $1 AND closed_at IS NULL)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, address).Scan(&exists); err != nil {
		return false, fmt.Errorf("has open position: %w", err)
	}
	return exists, nil
}

// GetOpen retrieves the open position. Returns ErrNotFound if none.
func (s *PositionStore) GetOpen(ctx context.Context, address string) (*domain.Position, error) {
	query := `
		SELECT address, entry_amount, moonbag_percent, opened_at, closed_at
		FROM positions
		WHERE address = $1 AND closed_at IS NULL
	`

	var p domain.Position
	var entry int64
	err := s.pool.QueryRow(ctx, query, address).Scan(
		&p.Address,
		&entry,
		&p.MoonbagPercent,
		&p.OpenedAt,
		&p.ClosedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get open position: %w", err)
	}

	p.EntryAmount = uint64(entry)
	return &p, nil
}
