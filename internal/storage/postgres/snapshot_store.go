package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// SnapshotStore implements storage.SnapshotStore using PostgreSQL.
// USD figures are stored as decimal strings to keep full precision.
type SnapshotStore struct {
	pool *Pool
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(pool *Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// RecordLatest overwrites the current snapshot for the address.
func (s *SnapshotStore) RecordLatest(ctx context.Context, snap *domain.MarketSnapshot) error {
	if snap == nil || snap.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO market_snapshots (
			address, token_name, symbol, price_usd, volume_24h_usd,
			liquidity_usd, pair_address, observed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (address) DO UPDATE SET
			token_name = EXCLUDED.token_name,
			symbol = EXCLUDED.symbol,
			price_usd = EXCLUDED.price_usd,
			volume_24h_usd = EXCLUDED.volume_24h_usd,
			liquidity_usd = EXCLUDED.liquidity_usd,
			pair_address = EXCLUDED.pair_address,
			observed_at = EXCLUDED.observed_at
	`

	_, err := s.pool.Exec(ctx, query,
		snap.Address,
		snap.TokenName,
		snap.Symbol,
		snap.PriceUSD.String(),
		snap.Volume24hUSD.String(),
		snap.LiquidityUSD.String(),
		snap.PairAddress,
		snap.ObservedAt,
	)
	if err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}
	return nil
}

// GetLatest retrieves the current snapshot. Returns ErrNotFound if absent.
func (s *SnapshotStore) GetLatest(ctx context.Context, address string) (*domain.MarketSnapshot, error) {
	query := `
		SELECT address, token_name, symbol, price_usd, volume_24h_usd,
			liquidity_usd, pair_address, observed_at
		FROM market_snapshots
		WHERE address = $1
	`

	var snap domain.MarketSnapshot
	var price, volume, liquidity string
	err := s.pool.QueryRow(ctx, query, address).Scan(
		&snap.Address,
		&snap.TokenName,
		&snap.Symbol,
		&price,
		&volume,
		&liquidity,
		&snap.PairAddress,
		&snap.ObservedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	if snap.PriceUSD, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse stored price %q: %w", price, err)
	}
	if snap.Volume24hUSD, err = decimal.NewFromString(volume); err != nil {
		return nil, fmt.Errorf("parse stored volume %q: %w", volume, err)
	}
	if snap.LiquidityUSD, err = decimal.NewFromString(liquidity); err != nil {
		return nil, fmt.Errorf("parse stored liquidity %q: %w", liquidity, err)
	}

	return &snap, nil
}
