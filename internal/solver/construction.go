package solver

import (
	"sort"

	"github.com/shiftforge/shiftcore/internal/constraint"
	"github.com/shiftforge/shiftcore/internal/domain"
)

// construct is the greedy construction pass: visit shifts in
// descending priority (ties broken by earlier start); for each
// unpinned, unassigned shift, pick the employee that has the required
// skills, is available, introduces no overlap, minimizes incremental
// hard+medium penalty, ties broken by lowest running weekly minutes.
// An unassignable shift stays null.
func construct(sch *domain.Schedule, cfg constraint.Config) {
	shifts := append([]*domain.Shift(nil), sch.ShiftsRaw()...)
	sort.SliceStable(shifts, func(i, j int) bool {
		if shifts[i].Priority != shifts[j].Priority {
			return shifts[i].Priority < shifts[j].Priority // 1 = highest priority
		}
		return shifts[i].Start.Before(shifts[j].Start)
	})

	for _, sh := range shifts {
		if sh.Pinned || sh.IsAssigned() {
			continue
		}
		assignBestCandidate(sch, cfg, sh)
	}
}

func assignBestCandidate(sch *domain.Schedule, cfg constraint.Config, sh *domain.Shift) {
	employees := sch.Employees()

	type candidate struct {
		emp          *domain.Employee
		penalty      int
		weeklyMinute int
	}
	var best *candidate

	for _, emp := range employees {
		if len(emp.Skills.Missing(sh.RequiredSkills)) > 0 {
			continue // missing required skill
		}
		date := domain.CivilDateIn(sh.Start, sch.Timezone)
		if emp.IsUnavailable(date) {
			continue // unavailable on this date
		}
		if wouldOverlap(sch, emp.ID, sh) {
			continue // would overlap an existing assignment
		}

		penalty := incrementalHardMedium(sch, cfg, sh, emp.ID)
		weekMinutes := runningWeeklyMinutes(sch, emp.ID, sh)

		cand := candidate{emp: emp, penalty: penalty, weeklyMinute: weekMinutes}
		if best == nil || cand.penalty < best.penalty ||
			(cand.penalty == best.penalty && cand.weeklyMinute < best.weeklyMinute) {
			best = &cand
		}
	}

	if best != nil {
		sh.Assign(best.emp.ID)
		sch.InvalidateScore()
	}
}

func wouldOverlap(sch *domain.Schedule, employeeID string, sh *domain.Shift) bool {
	for _, other := range sch.ShiftsRaw() {
		if other.ID == sh.ID || !other.IsAssigned() || other.AssigneeID() != employeeID {
			continue
		}
		if sh.Overlaps(other) {
			return true
		}
	}
	return false
}

func runningWeeklyMinutes(sch *domain.Schedule, employeeID string, sh *domain.Shift) int {
	wk := domain.ISOWeekOf(sh.Start, sch.Timezone)
	total := 0
	for _, other := range sch.ShiftsRaw() {
		if other.IsAssigned() && other.AssigneeID() == employeeID && domain.ISOWeekOf(other.Start, sch.Timezone) == wk {
			total += other.DurationMinutes()
		}
	}
	return total
}

// incrementalHardMedium tentatively assigns sh to employeeID, measures
// the resulting hard+medium penalty, then reverts. A from-scratch
// evaluator is simple and provably correct; delta scoring is not worth
// the bug surface at this problem size.
func incrementalHardMedium(sch *domain.Schedule, cfg constraint.Config, sh *domain.Shift, employeeID string) int {
	prev := sh.AssigneeID()
	wasAssigned := sh.IsAssigned()
	sh.Assign(employeeID)
	score := constraint.Evaluate(sch, cfg)
	if wasAssigned {
		sh.Assign(prev)
	} else {
		sh.Unassign()
	}
	return score.Hard + score.Medium
}
