package constraint

import (
	"math"

	"github.com/shiftforge/shiftcore/internal/domain"
)

// softUnassignedShift charges priority*10 per unassigned shift.
func softUnassignedShift(shifts []*domain.Shift) int {
	penalty := 0
	for _, sh := range shifts {
		if !sh.IsAssigned() {
			penalty += sh.Priority * 10
		}
	}
	return penalty
}

// softFairDistribution charges, per employee per calendar day of
// assignment, round(|actual_minutes-480|/60).
func softFairDistribution(sch *domain.Schedule, byEmployee map[string][]*domain.Shift) int {
	penalty := 0
	for _, shifts := range byEmployee {
		byDay := make(map[domain.CivilDate]int)
		for _, s := range shifts {
			date := domain.CivilDateIn(s.Start, sch.Timezone)
			byDay[date] += s.DurationMinutes()
		}
		for _, minutes := range byDay {
			penalty += roundAbsHours(minutes, 480)
		}
	}
	return penalty
}

// softWeeklyTarget charges, per employee per ISO week,
// round(|actual_week_minutes-target|/60). Each
// deployment's target mapping is carried in Config.
func softWeeklyTarget(sch *domain.Schedule, employees []*domain.Employee, byEmployee map[string][]*domain.Shift, cfg Config) int {
	penalty := 0
	for _, e := range employees {
		target := targetMinutesFor(e, cfg)
		for _, minutes := range weeklyMinutes(sch, byEmployee[e.ID]) {
			penalty += roundAbsHours(minutes, target)
		}
	}
	return penalty
}

func targetMinutesFor(e *domain.Employee, cfg Config) int {
	if e.HasTag(cfg.FullTimeTag) {
		return cfg.FullTimeWeeklyTargetMinutes
	}
	if e.HasTag(cfg.PartTimeTag) {
		return cfg.PartTimeWeeklyTargetMinutes
	}
	return cfg.PartTimeWeeklyTargetMinutes
}

func roundAbsHours(actual, target int) int {
	diff := math.Abs(float64(actual-target)) / 60.0
	return int(math.Round(diff))
}

// softPreferredDay applies a symmetric 1-point credit/penalty per
// preferred-day-off honored/violated, mirrored for preferred_work_day.
// Each employee's running total is floored at zero before it is added
// to the overall penalty, so one employee's honored preferences can
// never offset another employee's violations.
func softPreferredDay(sch *domain.Schedule, employees []*domain.Employee, byEmployee map[string][]*domain.Shift) int {
	dates := distinctCivilDates(sch)
	total := 0
	for _, e := range employees {
		assignedDates := make(map[domain.CivilDate]struct{})
		for _, s := range byEmployee[e.ID] {
			assignedDates[domain.CivilDateIn(s.Start, sch.Timezone)] = struct{}{}
		}
		employeePenalty := 0
		for _, d := range dates {
			weekday := civilWeekday(d)
			_, worked := assignedDates[d]

			if e.PreferredDaysOff.Has(weekday) {
				if worked {
					employeePenalty++ // violated: had a shift on a preferred day off
				} else {
					employeePenalty-- // honored: credited as -1 penalty
				}
			}
			if e.PreferredWorkDays.Has(weekday) {
				if worked {
					employeePenalty--
				} else {
					employeePenalty++
				}
			}
		}
		if employeePenalty < 0 {
			employeePenalty = 0
		}
		total += employeePenalty
	}
	return total
}

func distinctCivilDates(sch *domain.Schedule) []domain.CivilDate {
	seen := make(map[domain.CivilDate]struct{})
	for _, s := range sch.Shifts() {
		seen[domain.CivilDateIn(s.Start, sch.Timezone)] = struct{}{}
	}
	out := make([]domain.CivilDate, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	return out
}

func civilWeekday(d domain.CivilDate) domain.Weekday {
	t := dateToTime(d)
	return t.Weekday()
}
