package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// OrderStore implements storage.OrderStore using PostgreSQL.
type OrderStore struct {
	pool *Pool
}

// NewOrderStore creates a new OrderStore.
func NewOrderStore(pool *Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// Compile-time interface check.
var _ storage.OrderStore = (*OrderStore)(nil)

// Insert adds an order record.
func (s *OrderStore) Insert(ctx context.Context, o *domain.TradeOrder) error {
	if o == nil || o.OrderID == "" || o.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO trade_orders (
			order_id, address, side, requested_amount, slippage_bps,
			signature, status, reason, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.pool.Exec(ctx, query,
		o.OrderID,
		o.Address,
		string(o.Side),
		int64(o.RequestedAmount),
		o.SlippageBps,
		o.Signature,
		string(o.Status),
		o.Reason,
		o.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByAddress retrieves all orders for an address, ordered by
// submitted_at ASC.
func (s *OrderStore) GetByAddress(ctx context.Context, address string) ([]*domain.TradeOrder, error) {
	query := `
		SELECT order_id, address, side, requested_amount, slippage_bps,
			signature, status, reason, submitted_at
		FROM trade_orders
		WHERE address = $1
		ORDER BY submitted_at ASC, order_id ASC
	`

	rows, err := s.pool.Query(ctx, query, address)
	if err != nil {
		return nil, fmt.Errorf("get orders by address: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// scanOrders scans rows into TradeOrder values.
func scanOrders(rows pgx.Rows) ([]*domain.TradeOrder, error) {
	var orders []*domain.TradeOrder

	for rows.Next() {
		var o domain.TradeOrder
		var side, status string
		var amount int64

		err := rows.Scan(
			&o.OrderID,
			&o.Address,
			&side,
			&amount,
			&o.SlippageBps,
			&o.Signature,
			&status,
			&o.Reason,
			&o.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		o.Side = domain.Side(side)
		o.Status = domain.OrderStatus(status)
		o.RequestedAmount = uint64(amount)
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}
