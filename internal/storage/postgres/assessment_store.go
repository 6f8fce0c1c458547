package postgres

import (
	"context"
	"fmt"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// AssessmentStore implements storage.AssessmentStore using PostgreSQL.
// An Unknown score is stored as SQL NULL; zero is a real score.
type AssessmentStore struct {
	pool *Pool
}

// NewAssessmentStore creates a new AssessmentStore.
func NewAssessmentStore(pool *Pool) *AssessmentStore {
	return &AssessmentStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AssessmentStore = (*AssessmentStore)(nil)

// Record overwrites the assessment for the address.
func (s *AssessmentStore) Record(ctx context.Context, a *domain.RiskAssessment) error {
	if a == nil || a.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO risk_assessments (address, score, assessed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO UPDATE SET
			score = EXCLUDED.score,
			assessed_at = EXCLUDED.assessed_at
	`

	var score *float64
	if a.Score.Known {
		score = &a.Score.Value
	}

	if _, err := s.pool.Exec(ctx, query, a.Address, score, a.AssessedAt); err != nil {
		return fmt.Errorf("record assessment: %w", err)
	}
	return nil
}

// Get retrieves the latest assessment. Returns ErrNotFound if absent.
func (s *AssessmentStore) Get(ctx context.Context, address string) (*domain.RiskAssessment, error) {
	query := `
		SELECT address, score, assessed_at
		FROM risk_assessments
		WHERE address = $1
	`

	var a domain.RiskAssessment
	var score *float64
	err := s.pool.QueryRow(ctx, query, address).Scan(&a.Address, &score, &a.AssessedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get assessment: %w", err)
	}

	if score != nil {
		a.Score = domain.NewScore(*score)
	}
	return &a, nil
}
