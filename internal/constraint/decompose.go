package constraint

import (
	"sort"

	"github.com/shiftforge/shiftcore/internal/domain"
)

// ShiftIsClean decides whether a shift is safe to pin: it contributes
// zero hard and zero medium penalty under a per-shift decomposition of
// the schedule's constraints. Soft penalties never force unpinning.
//
// The weekly maximum and weekly minimum constraints are aggregates,
// not naturally per-shift; a shift is charged against them if the
// (employee, ISO-week) it falls in is itself in violation — i.e. the
// shift shares responsibility for that week's overage or shortfall.
// That attribution rule is a deliberate choice among several
// equally defensible ones.
func ShiftIsClean(sch *domain.Schedule, cfg Config, shiftID string) (bool, error) {
	sh, err := sch.IndexShift(shiftID)
	if err != nil {
		return false, err
	}
	if !sh.IsAssigned() {
		// An unassigned shift contributes only a soft penalty, never hard/medium.
		return true, nil
	}
	emp, err := sch.IndexEmployee(sh.AssigneeID())
	if err != nil {
		return false, nil
	}

	// Missing required skill.
	if len(emp.Skills.Missing(sh.RequiredSkills)) > 0 {
		return false, nil
	}
	// Unavailable on this date.
	date := domain.CivilDateIn(sh.Start, sch.Timezone)
	if emp.IsUnavailable(date) {
		return false, nil
	}

	assigned := assignedShiftsFor(sch, emp.ID)

	// Any overlapping or under-rested pair involving this shift.
	for _, other := range assigned {
		if other.ID == sh.ID {
			continue
		}
		if sh.Overlaps(other) {
			return false, nil
		}
		earlier, later := sh, other
		if other.Start.Before(sh.Start) {
			earlier, later = other, sh
		}
		gap := int(later.Start.Sub(earlier.End).Minutes())
		if gap < minRestMinutes {
			return false, nil
		}
	}

	// The employee's ISO week containing this shift is over the maximum.
	wk := domain.ISOWeekOf(sh.Start, sch.Timezone)
	weekMinutes := 0
	for _, other := range assigned {
		if domain.ISOWeekOf(other.Start, sch.Timezone) == wk {
			weekMinutes += other.DurationMinutes()
		}
	}
	if weekMinutes > weeklyMaxMinutes {
		return false, nil
	}

	// A full-time employee whose week containing this shift is under
	// the minimum.
	if emp.HasTag(cfg.FullTimeTag) && weekMinutes < fullTimeMinMinute {
		return false, nil
	}

	return true, nil
}

func assignedShiftsFor(sch *domain.Schedule, employeeID string) []*domain.Shift {
	var out []*domain.Shift
	for _, sh := range sch.ShiftsRaw() {
		if sh.IsAssigned() && sh.AssigneeID() == employeeID {
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
