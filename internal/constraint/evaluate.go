package constraint

import (
	"sort"

	"github.com/shiftforge/shiftcore/internal/domain"
)

// Evaluate computes a Schedule's score from scratch. It
// iterates employees and shifts in id-sorted order (via Schedule's
// accessors) so that two semantically equal schedules with differently
// ordered collections receive identical scores.
func Evaluate(sch *domain.Schedule, cfg Config) domain.Score {
	shifts := sch.Shifts()
	employees := sch.Employees()

	byEmployee := make(map[string][]*domain.Shift, len(employees))
	for _, e := range employees {
		byEmployee[e.ID] = nil
	}
	for _, sh := range shifts {
		if sh.IsAssigned() {
			byEmployee[sh.AssigneeID()] = append(byEmployee[sh.AssigneeID()], sh)
		}
	}
	for id, list := range byEmployee {
		sorted := append([]*domain.Shift(nil), list...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })
		byEmployee[id] = sorted
	}

	var score domain.Score

	score.Hard += hardSkillMatch(sch, shifts)
	score.Hard += hardNoOverlap(byEmployee)
	score.Hard += hardWeeklyMaximum(sch, byEmployee)
	score.Hard += hardUnavailableDate(sch, shifts)

	score.Medium += mediumMinimumRest(byEmployee)
	score.Medium += mediumWeeklyMinimumFullTime(sch, employees, byEmployee, cfg)

	score.Soft += softUnassignedShift(shifts)
	score.Soft += softFairDistribution(sch, byEmployee)
	score.Soft += softWeeklyTarget(sch, employees, byEmployee, cfg)
	score.Soft += softPreferredDay(sch, employees, byEmployee)

	// softPreferredDay already floors each employee's credit/penalty at
	// zero, so this sum cannot go negative; the floor here is a
	// defensive backstop, not load-bearing.
	if score.Soft < 0 {
		score.Soft = 0
	}

	return score
}

func minutesOf(shifts []*domain.Shift) int {
	total := 0
	for _, s := range shifts {
		total += s.DurationMinutes()
	}
	return total
}

func ceilDiv(numerator, denominator int) int {
	if numerator <= 0 {
		return 0
	}
	q := numerator / denominator
	if numerator%denominator != 0 {
		q++
	}
	return q
}

// weeklyMinutes groups an employee's assigned shifts (already sorted by
// Start) by ISO week, in the schedule's timezone.
func weeklyMinutes(sch *domain.Schedule, shifts []*domain.Shift) map[domain.ISOWeek]int {
	out := make(map[domain.ISOWeek]int)
	for _, s := range shifts {
		wk := domain.ISOWeekOf(s.Start, sch.Timezone)
		out[wk] += s.DurationMinutes()
	}
	return out
}
