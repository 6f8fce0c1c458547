package clickhouse

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// SnapshotHistoryStore implements storage.SnapshotHistoryStore using
// ClickHouse. The history table is append-only; USD figures lose
// precision to Float64, which is acceptable for analytics.
type SnapshotHistoryStore struct {
	conn *Conn
}

// NewSnapshotHistoryStore creates a new SnapshotHistoryStore.
func NewSnapshotHistoryStore(conn *Conn) *SnapshotHistoryStore {
	return &SnapshotHistoryStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SnapshotHistoryStore = (*SnapshotHistoryStore)(nil)

// Insert appends snapshots to the history table in one batch.
func (s *SnapshotHistoryStore) Insert(ctx context.Context, snaps []*domain.MarketSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO snapshot_history (
			address, token_name, symbol, price_usd, volume_24h_usd,
			liquidity_usd, pair_address, observed_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, snap := range snaps {
		err = batch.Append(
			snap.Address,
			snap.TokenName,
			snap.Symbol,
			snap.PriceUSD.InexactFloat64(),
			snap.Volume24hUSD.InexactFloat64(),
			snap.LiquidityUSD.InexactFloat64(),
			snap.PairAddress,
			uint64(snap.ObservedAt),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByAddress retrieves all history rows for an address, ordered by
// observed_at ASC.
func (s *SnapshotHistoryStore) GetByAddress(ctx context.Context, address string) ([]*domain.MarketSnapshot, error) {
	query := `
		SELECT address, token_name, symbol, price_usd, volume_24h_usd,
			liquidity_usd, pair_address, observed_at
		FROM snapshot_history
		WHERE address = ?
		ORDER BY observed_at ASC
	`

	rows, err := s.conn.Query(ctx, query, address)
	if err != nil {
		return nil, fmt.Errorf("query history by address: %w", err)
	}
	defer rows.Close()

	var snaps []*domain.MarketSnapshot
	for rows.Next() {
		var snap domain.MarketSnapshot
		var price, volume, liquidity float64
		var observedAt uint64

		err := rows.Scan(
			&snap.Address,
			&snap.TokenName,
			&snap.Symbol,
			&price,
			&volume,
			&liquidity,
			&snap.PairAddress,
			&observedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}

		snap.PriceUSD = decimal.NewFromFloat(price)
		snap.Volume24hUSD = decimal.NewFromFloat(volume)
		snap.LiquidityUSD = decimal.NewFromFloat(liquidity)
		snap.ObservedAt = int64(observedAt)
		snaps = append(snaps, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return snaps, nil
}
