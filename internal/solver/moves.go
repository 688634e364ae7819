package solver

import (
	"math/rand"

	"github.com/shiftforge/shiftcore/internal/domain"
)

// move is a reversible mutation of the walker schedule. undo restores
// the exact prior state so the hot loop never needs a full clone to
// backtrack a rejected move.
type move struct {
	undo func()
}

// unpinnedShifts returns the subset of shifts the solver is allowed to
// touch.
func unpinnedShifts(sch *domain.Schedule) []*domain.Shift {
	var out []*domain.Shift
	for _, s := range sch.ShiftsRaw() {
		if !s.Pinned {
			out = append(out, s)
		}
	}
	return out
}

// changeMove reassigns one unpinned shift to a random employee or to
// null.
func changeMove(sch *domain.Schedule, rng *rand.Rand, pool []*domain.Shift) (*move, bool) {
	if len(pool) == 0 {
		return nil, false
	}
	sh := pool[rng.Intn(len(pool))]
	if sh.Pinned {
		return nil, false // invariant guard: never touch a pinned shift
	}

	employees := sch.Employees()
	// choice == len(employees) is the extra "assign to null" option.
	choice := rng.Intn(len(employees) + 1)

	prevAssignee := sh.AssigneeID()
	wasAssigned := sh.IsAssigned()

	if choice == len(employees) {
		sh.Unassign()
	} else {
		sh.Assign(employees[choice].ID)
	}

	return &move{undo: func() {
		if wasAssigned {
			sh.Assign(prevAssignee)
		} else {
			sh.Unassign()
		}
	}}, true
}

// swapMove exchanges the assignees of two unpinned shifts.
func swapMove(sch *domain.Schedule, rng *rand.Rand, pool []*domain.Shift) (*move, bool) {
	if len(pool) < 2 {
		return nil, false
	}
	i := rng.Intn(len(pool))
	j := rng.Intn(len(pool))
	if i == j {
		j = (j + 1) % len(pool)
	}
	a, b := pool[i], pool[j]
	if a.Pinned || b.Pinned {
		return nil, false
	}

	aPrev, aWas := a.AssigneeID(), a.IsAssigned()
	bPrev, bWas := b.AssigneeID(), b.IsAssigned()

	if bWas {
		a.Assign(bPrev)
	} else {
		a.Unassign()
	}
	if aWas {
		b.Assign(aPrev)
	} else {
		b.Unassign()
	}

	return &move{undo: func() {
		if aWas {
			a.Assign(aPrev)
		} else {
			a.Unassign()
		}
		if bWas {
			b.Assign(bPrev)
		} else {
			b.Unassign()
		}
	}}, true
}
