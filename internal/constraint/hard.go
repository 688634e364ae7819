package constraint

import "github.com/shiftforge/shiftcore/internal/domain"

// hardSkillMatch counts one violation per missing skill per assigned
// shift.
func hardSkillMatch(sch *domain.Schedule, shifts []*domain.Shift) int {
	violations := 0
	for _, sh := range shifts {
		if !sh.IsAssigned() {
			continue
		}
		emp, err := sch.IndexEmployee(sh.AssigneeID())
		if err != nil {
			// A dangling reference should never arise from a schedule that
			// passed NewSchedule's checks; if it does, treat every
			// required skill as missing rather than panic.
			violations += len(sh.RequiredSkills)
			continue
		}
		violations += len(emp.Skills.Missing(sh.RequiredSkills))
	}
	return violations
}

// hardNoOverlap counts one violation per overlapping pair of shifts
// sharing an employee.
func hardNoOverlap(byEmployee map[string][]*domain.Shift) int {
	violations := 0
	for _, shifts := range byEmployee {
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				if shifts[i].Overlaps(shifts[j]) {
					violations++
				}
			}
		}
	}
	return violations
}

// hardWeeklyMaximum charges, per (employee, ISO week), minutes beyond
// 45h at a rate of ceil(excess_minutes/60).
func hardWeeklyMaximum(sch *domain.Schedule, byEmployee map[string][]*domain.Shift) int {
	violations := 0
	for _, shifts := range byEmployee {
		for _, minutes := range weeklyMinutes(sch, shifts) {
			if minutes > weeklyMaxMinutes {
				violations += ceilDiv(minutes-weeklyMaxMinutes, 60)
			}
		}
	}
	return violations
}

// hardUnavailableDate counts one violation per shift whose civil
// start-date falls in the assignee's unavailable_dates.
func hardUnavailableDate(sch *domain.Schedule, shifts []*domain.Shift) int {
	violations := 0
	for _, sh := range shifts {
		if !sh.IsAssigned() {
			continue
		}
		emp, err := sch.IndexEmployee(sh.AssigneeID())
		if err != nil {
			continue
		}
		date := domain.CivilDateIn(sh.Start, sch.Timezone)
		if emp.IsUnavailable(date) {
			violations++
		}
	}
	return violations
}
