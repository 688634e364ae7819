package solver

import (
	"math/rand"
	"time"

	"github.com/shiftforge/shiftcore/internal/constraint"
	"github.com/shiftforge/shiftcore/internal/domain"
)

// lahcHistoryLength is the late-acceptance window: a candidate move is
// accepted if it is no worse than the current solution or the solution
// from this many iterations ago, which lets the walker drift through
// non-improving moves to escape local minima.
const lahcHistoryLength = 64

// localSearch implements Phase B. It mutates sch as the "current
// walker" in place and returns the best schedule found along with
// why the search stopped.
func localSearch(
	sch *domain.Schedule,
	cfg constraint.Config,
	rng *rand.Rand,
	start time.Time,
	deadline time.Time,
	cancel *CancelToken,
	progress *progressLogger,
) (bestSchedule *domain.Schedule, bestScore domain.Score, improvements []Improvement, terminatedBy TerminatedBy) {
	currentScore := constraint.Evaluate(sch, cfg)
	bestScore = currentScore
	bestSchedule = sch.Clone()

	history := make([]domain.Score, lahcHistoryLength)
	for i := range history {
		history[i] = currentScore
	}

	iteration := 0
	for {
		if cancel.IsCancelled() {
			return bestSchedule, bestScore, improvements, TerminatedByCancel
		}
		if !time.Now().Before(deadline) {
			return bestSchedule, bestScore, improvements, TerminatedByBudget
		}
		if bestScore.IsZero() {
			return bestSchedule, bestScore, improvements, TerminatedByOptimum
		}
		progress.maybeHeartbeat()

		pool := unpinnedShifts(sch)
		if len(pool) == 0 {
			// Nothing left for the solver to touch; wait out the budget
			// (or cancellation) rather than spin uselessly.
			select {
			case <-cancel.Done():
				return bestSchedule, bestScore, improvements, TerminatedByCancel
			case <-time.After(pollInterval):
				continue
			}
		}

		var mv *move
		var ok bool
		if rng.Intn(2) == 0 {
			mv, ok = changeMove(sch, rng, pool)
		} else {
			mv, ok = swapMove(sch, rng, pool)
		}
		if !ok {
			iteration++
			continue
		}

		candidateScore := constraint.Evaluate(sch, cfg)
		idx := iteration % lahcHistoryLength

		accept := candidateScore.LessOrEqual(currentScore) || candidateScore.LessOrEqual(history[idx])
		if accept {
			currentScore = candidateScore
		} else {
			mv.undo()
			sch.InvalidateScore()
		}
		history[idx] = currentScore

		if candidateScore.Less(bestScore) && accept {
			bestScore = candidateScore
			bestSchedule = sch.Clone()
			improvements = append(improvements, Improvement{ElapsedMS: elapsedMS(start), Score: bestScore})
			progress.improvement(bestScore)
		}

		iteration++
	}
}
