package memory

import (
	"context"
	"sort"
	"sync"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// OrderStore is an in-memory implementation of storage.OrderStore.
type OrderStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.TradeOrder // keyed by address
}

// NewOrderStore creates a new in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		data: make(map[string][]*domain.TradeOrder),
	}
}

// Insert adds an order record.
func (s *OrderStore) Insert(_ context.Context, o *domain.TradeOrder) error {
	if o == nil || o.OrderID == "" || o.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orderCopy := *o
	s.data[o.Address] = append(s.data[o.Address], &orderCopy)
	return nil
}

// GetByAddress retrieves all orders for an address, ordered by
// submitted_at ASC.
func (s *OrderStore) GetByAddress(_ context.Context, address string) ([]*domain.TradeOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TradeOrder
	for _, o := range s.data[address] {
		orderCopy := *o
		result = append(result, &orderCopy)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SubmittedAt < result[j].SubmittedAt
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.OrderStore = (*OrderStore)(nil)
