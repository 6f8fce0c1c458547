package memory

import (
	"context"
	"sort"
	"sync"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// SnapshotStore is an in-memory implementation of storage.SnapshotStore.
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[string]*domain.MarketSnapshot // keyed by address, latest-wins
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		data: make(map[string]*domain.MarketSnapshot),
	}
}

// RecordLatest overwrites the current snapshot for the address.
func (s *SnapshotStore) RecordLatest(_ context.Context, snap *domain.MarketSnapshot) error {
	if snap == nil || snap.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapCopy := *snap
	s.data[snap.Address] = &snapCopy
	return nil
}

// GetLatest retrieves the current snapshot. Returns ErrNotFound if absent.
func (s *SnapshotStore) GetLatest(_ context.Context, address string) (*domain.MarketSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, exists := s.data[address]
	if !exists {
		return nil, storage.ErrNotFound
	}

	snapCopy := *snap
	return &snapCopy, nil
}

// Verify interface compliance at compile time.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotHistoryStore is an in-memory implementation of
// storage.SnapshotHistoryStore.
type SnapshotHistoryStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.MarketSnapshot // keyed by address
}

// NewSnapshotHistoryStore creates a new in-memory history store.
func NewSnapshotHistoryStore() *SnapshotHistoryStore {
	return &SnapshotHistoryStore{
		data: make(map[string][]*domain.MarketSnapshot),
	}
}

// Insert appends snapshots to the history.
func (s *SnapshotHistoryStore) Insert(_ context.Context, snapshots []*domain.MarketSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range snapshots {
		if snap == nil || snap.Address == "" {
			return storage.ErrInvalidInput
		}
		snapCopy := *snap
		s.data[snap.Address] = append(s.data[snap.Address], &snapCopy)
	}
	return nil
}

// GetByAddress retrieves all snapshots for an address, ordered by
// observed_at ASC.
func (s *SnapshotHistoryStore) GetByAddress(_ context.Context, address string) ([]*domain.MarketSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.MarketSnapshot
	for _, snap := range s.data[address] {
		snapCopy := *snap
		result = append(result, &snapCopy)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ObservedAt < result[j].ObservedAt
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.SnapshotHistoryStore = (*SnapshotHistoryStore)(nil)
