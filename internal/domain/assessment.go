package domain

// Score is a risk safety score in [0,100], or Unknown when the scoring
// source returned no usable value. Unknown is a first-class outcome,
// not a zero default.
type Score struct {
	Value float64
	Known bool
}

// ScoreUnknown is the sentinel for "the scoring source had no answer".
var ScoreUnknown = Score{}

// NewScore creates a known score.
func NewScore(value float64) Score {
	return Score{Value: value, Known: true}
}

// IsValid reports whether a known score lies in [0,100]. Unknown is
// always valid.
func (s Score) IsValid() bool {
	if !s.Known {
		return true
	}
	return s.Value >= 0 && s.Value <= 100
}

// Below reports whether the score is known and strictly below threshold.
func (s Score) Below(threshold float64) bool {
	return s.Known && s.Value < threshold
}

// RiskAssessment is the latest risk score recorded for a candidate.
// One-to-one with Candidate, latest-wins.
type RiskAssessment struct {
	Address    string
	Score      Score
	AssessedAt int64 // Unix timestamp in milliseconds
}
