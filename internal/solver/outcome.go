package solver

import (
	"time"

	"github.com/shiftforge/shiftcore/internal/domain"
)

// TerminatedBy is the reason search stopped.
type TerminatedBy string

const (
	TerminatedByBudget  TerminatedBy = "budget"
	TerminatedByCancel  TerminatedBy = "cancel"
	TerminatedByOptimum TerminatedBy = "optimum"
)

// Improvement records a new best score and when it was found, relative
// to solve start.
type Improvement struct {
	ElapsedMS int64
	Score     domain.Score
}

// Outcome is solve's public contract output.
// The solver always returns one, even on catastrophic fault.
type Outcome struct {
	FinalSchedule *domain.Schedule
	BestScore     domain.Score
	Improvements  []Improvement
	TerminatedBy  TerminatedBy
	Err           error
}

func elapsedMS(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
