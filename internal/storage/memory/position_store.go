package memory

import (
	"context"
	"sync"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// PositionStore is an in-memory implementation of storage.PositionStore.
// The single mutex makes Open/Close atomic per address.
type PositionStore struct {
	mu     sync.Mutex
	open   map[string]*domain.Position // open position per address
	closed []*domain.Position
}

// NewPositionStore creates a new in-memory position store.
func NewPositionStore() *PositionStore {
	return &PositionStore{
		open: make(map[string]*domain.Position),
	}
}

// Open creates an open position. Returns ErrDuplicatePosition if one is
// already open for the address.
func (s *PositionStore) Open(_ context.Context, address string, entryAmount uint64, moonbagPercent int, openedAt int64) error {
	if address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.open[address]; exists {
		return storage.ErrDuplicatePosition
	}

	s.open[address] = &domain.Position{
		Address:        address,
		EntryAmount:    entryAmount,
		MoonbagPercent: moonbagPercent,
		OpenedAt:       openedAt,
	}
	return nil
}

// Close marks the open position closed. Returns ErrNoOpenPosition if
// none is open.
func (s *PositionStore) Close(_ context.Context, address string, closedAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.open[address]
	if !exists {
		return storage.ErrNoOpenPosition
	}

	p.ClosedAt = &closedAt
	s.closed = append(s.closed, p)
	delete(s.open, address)
	return nil
}

// HasOpen reports whether an open position exists for the address.
func (s *PositionStore) HasOpen(_ context.Context, address string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.open[address]
	return exists, nil
}

// GetOpen retrieves the open position. Returns ErrNotFound if none.
func (s *PositionStore) GetOpen(_ context.Context, address string) (*domain.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.open[address]
	if !exists {
		return nil, storage.ErrNotFound
	}

	positionCopy := *p
	return &positionCopy, nil
}

// Verify interface compliance at compile time.
var _ storage.PositionStore = (*PositionStore)(nil)
