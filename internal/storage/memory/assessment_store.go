package memory

import (
	"context"
	"sync"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// AssessmentStore is an in-memory implementation of storage.AssessmentStore.
type AssessmentStore struct {
	mu   sync.RWMutex
	data map[string]*domain.RiskAssessment // keyed by address, latest-wins
}

// NewAssessmentStore creates a new in-memory assessment store.
func NewAssessmentStore() *AssessmentStore {
	return &AssessmentStore{
		data: make(map[string]*domain.RiskAssessment),
	}
}

// Record overwrites the assessment for the address.
func (s *AssessmentStore) Record(_ context.Context, a *domain.RiskAssessment) error {
	if a == nil || a.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assessmentCopy := *a
	s.data[a.Address] = &assessmentCopy
	return nil
}

// Get retrieves the latest assessment. Returns ErrNotFound if absent.
func (s *AssessmentStore) Get(_ context.Context, address string) (*domain.RiskAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.data[address]
	if !exists {
		return nil, storage.ErrNotFound
	}

	assessmentCopy := *a
	return &assessmentCopy, nil
}

// Verify interface compliance at compile time.
var _ storage.AssessmentStore = (*AssessmentStore)(nil)
