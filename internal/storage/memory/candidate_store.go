package memory

import (
	"context"
	"sync"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// CandidateStore is an in-memory implementation of storage.CandidateStore.
type CandidateStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Candidate // keyed by address
}

// NewCandidateStore creates a new in-memory candidate store.
func NewCandidateStore() *CandidateStore {
	return &CandidateStore{
		data: make(map[string]*domain.Candidate),
	}
}

// Upsert creates the candidate if absent, otherwise merges new symbols
// and the source account into the existing record.
func (s *CandidateStore) Upsert(_ context.Context, address string, symbols []string, sourceAccount string, seenAt int64) error {
	if address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.data[address]
	if !exists {
		c = &domain.Candidate{
			Address:     address,
			FirstSeenAt: seenAt,
			CreatedAt:   seenAt,
		}
		s.data[address] = c
	}

	for _, sym := range symbols {
		if !c.HasSymbol(sym) {
			c.Symbols = append(c.Symbols, sym)
		}
	}
	if sourceAccount != "" && !c.HasSource(sourceAccount) {
		c.SourceAccounts = append(c.SourceAccounts, sourceAccount)
	}

	return nil
}

// Get retrieves a candidate by address. Returns ErrNotFound if absent.
func (s *CandidateStore) Get(_ context.Context, address string) (*domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.data[address]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy to prevent external mutation.
	out := *c
	out.Symbols = append([]string(nil), c.Symbols...)
	out.SourceAccounts = append([]string(nil), c.SourceAccounts...)
	return &out, nil
}

// Exists reports whether a candidate with the address is recorded.
func (s *CandidateStore) Exists(_ context.Context, address string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.data[address]
	return exists, nil
}

// Verify interface compliance at compile time.
var _ storage.CandidateStore = (*CandidateStore)(nil)
