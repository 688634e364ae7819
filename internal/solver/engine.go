// Package solver implements construction + local search over shift
// assignments within a wall-clock budget, with cooperative cancellation
// and progress reporting.
package solver

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shiftforge/shiftcore/internal/constraint"
	"github.com/shiftforge/shiftcore/internal/domain"
	"github.com/shiftforge/shiftcore/internal/shifterr"
)

// Solve runs Phase A (construction) followed by Phase B (local search)
// against schedule, respecting cfg.TimeBudget and cancel. It always
// returns an Outcome, even on catastrophic internal fault: a recovered panic surfaces as
// TerminatedByCancel with Err set, never propagated as a panic.
func Solve(schedule *domain.Schedule, cfg Config, cancel *CancelToken, ccfg constraint.Config, logger *zap.Logger) (outcome *Outcome) {
	start := time.Now()
	deadline := start.Add(cfg.TimeBudget)
	progress := newProgressLogger(logger, cfg.LogLevel, start)

	defer func() {
		if r := recover(); r != nil {
			outcome = &Outcome{
				FinalSchedule: schedule,
				TerminatedBy:  TerminatedByCancel,
				Err:           shifterr.InternalFrom(fmt.Errorf("solver panic: %v", r)),
			}
		}
	}()

	working := schedule.Clone()
	rng := newRand(cfg, working)

	progress.phase("construction")
	construct(working, ccfg)

	progress.phase("local_search")
	best, bestScore, improvements, terminatedBy := localSearch(working, ccfg, rng, start, deadline, cancel, progress)

	best.Score = &bestScore
	outcome = &Outcome{
		FinalSchedule: best,
		BestScore:     bestScore,
		Improvements:  improvements,
		TerminatedBy:  terminatedBy,
	}
	progress.summary(outcome)
	return outcome
}
