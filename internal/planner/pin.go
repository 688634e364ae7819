// Package planner translates mutation requests into a pinned re-solve.
package planner

import (
	"github.com/shiftforge/shiftcore/internal/constraint"
	"github.com/shiftforge/shiftcore/internal/domain"
)

// pinCleanExcept pins every currently-assigned shift whose own
// per-shift decomposition is clean (zero hard + zero medium), and
// unpins every other shift (including every null-assigned shift),
// the "clean" rule add_employee uses. forceUnpin is an extra set of
// shift ids to force-unpin regardless of cleanliness.
func pinCleanExcept(sch *domain.Schedule, cfg constraint.Config, forceUnpin map[string]struct{}) error {
	for _, sh := range sch.ShiftsRaw() {
		if _, forced := forceUnpin[sh.ID]; forced {
			sh.Pinned = false
			continue
		}
		if !sh.IsAssigned() {
			sh.Pinned = false
			continue
		}
		clean, err := constraint.ShiftIsClean(sch, cfg, sh.ID)
		if err != nil {
			return err
		}
		sh.Pinned = clean
	}
	return nil
}

// ClearPins clears every pinned flag after a re-solve completes,
// success or failure: pins set by a mutation are transient by design.
func ClearPins(sch *domain.Schedule) {
	for _, sh := range sch.ShiftsRaw() {
		sh.Pinned = false
	}
}

// PinShifts implements the persistent pin toggle operation: it survives across subsequent solves until
// explicitly cleared or until the next mutation-driven solve resets
// pins.
func PinShifts(sch *domain.Schedule, shiftIDs []string, pin bool) error {
	for _, id := range shiftIDs {
		sh, err := sch.IndexShift(id)
		if err != nil {
			return err
		}
		sh.Pinned = pin
	}
	return nil
}
