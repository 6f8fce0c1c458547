// Package riskscore resolves a safety score for a token address from an
// external scoring source. Scoring is advisory: every failure mode maps
// to Score Unknown so vetting never blocks discovery.
package riskscore

import (
	"context"

	"sniper-agent/internal/domain"
)

// Provider resolves a risk score for a token address. Implementations
// must return ScoreUnknown instead of an error for missing data,
// transport failures and parse failures.
type Provider interface {
	Score(ctx context.Context, address string) domain.Score
}
