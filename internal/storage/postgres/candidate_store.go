package postgres

import (
	"context"
	"fmt"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// CandidateStore implements storage.CandidateStore using PostgreSQL.
type CandidateStore struct {
	pool *Pool
}

// NewCandidateStore creates a new CandidateStore.
func NewCandidateStore(pool *Pool) *CandidateStore {
	return &CandidateStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CandidateStore = (*CandidateStore)(nil)

// Upsert creates the candidate if absent, otherwise merges new symbols
// and the source account into the existing record. The array merge is
// done in SQL so concurrent sightings cannot lose entries.
func (s *CandidateStore) Upsert(ctx context.Context, address string, symbols []string, sourceAccount string, seenAt int64) error {
	if address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO candidates (address, symbols, source_accounts, first_seen_at, created_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (address) DO UPDATE SET
			symbols = (
				SELECT COALESCE(array_agg(DISTINCT s), '{}')
				FROM unnest(candidates.symbols || EXCLUDED.symbols) AS s
			),
			source_accounts = (
				SELECT COALESCE(array_agg(DISTINCT s), '{}')
				FROM unnest(candidates.source_accounts || EXCLUDED.source_accounts) AS s
			)
	`

	sources := []string{}
	if sourceAccount != "" {
		sources = []string{sourceAccount}
	}
	if symbols == nil {
		symbols = []string{}
	}

	if _, err := s.pool.Exec(ctx, query, address, symbols, sources, seenAt); err != nil {
		return fmt.Errorf("upsert candidate: %w", err)
	}
	return nil
}

// Get retrieves a candidate by address. Returns ErrNotFound if absent.
func (s *CandidateStore) Get(ctx context.Context, address string) (*domain.Candidate, error) {
	query := `
		SELECT address, symbols, source_accounts, first_seen_at, created_at
		FROM candidates
		WHERE address = $1
	`

	var c domain.Candidate
	err := s.pool.QueryRow(ctx, query, address).Scan(
		&c.Address,
		&c.Symbols,
		&c.SourceAccounts,
		&c.FirstSeenAt,
		&c.CreatedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return &c, nil
}

// Exists reports whether a candidate with the address is recorded.
func (s *CandidateStore) Exists(ctx context.Context, address string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM candidates WHERE address = $1)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, address).Scan(&exists); err != nil {
		return false, fmt.Errorf("candidate exists: %w", err)
	}
	return exists, nil
}
