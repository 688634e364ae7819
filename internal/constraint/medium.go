package constraint

import "github.com/shiftforge/shiftcore/internal/domain"

// mediumMinimumRest charges, for any two shifts assigned to the same
// employee where the later start minus the earlier end is under 8h,
// a penalty of ceil((480-gap)/60), minimum 1.
func mediumMinimumRest(byEmployee map[string][]*domain.Shift) int {
	violations := 0
	for _, shifts := range byEmployee {
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				earlier, later := shifts[i], shifts[j]
				if later.Start.Before(earlier.Start) {
					earlier, later = later, earlier
				}
				gapMinutes := int(later.Start.Sub(earlier.End).Minutes())
				if gapMinutes < minRestMinutes {
					penalty := ceilDiv(minRestMinutes-gapMinutes, 60)
					if penalty < 1 {
						penalty = 1
					}
					violations += penalty
				}
			}
		}
	}
	return violations
}

// mediumWeeklyMinimumFullTime charges a full-time-tagged employee
// accruing under 32h in any ISO week ceil((1920-minutes)/60). Weeks
// where the employee has zero assigned minutes and never appears in
// byEmployee are not evaluated — only weeks the employee actually has
// at least one assignment in are considered, since the schedule
// carries no notion of which weeks are "in scope" for them.
func mediumWeeklyMinimumFullTime(sch *domain.Schedule, employees []*domain.Employee, byEmployee map[string][]*domain.Shift, cfg Config) int {
	violations := 0
	for _, e := range employees {
		if !e.HasTag(cfg.FullTimeTag) {
			continue
		}
		for _, minutes := range weeklyMinutes(sch, byEmployee[e.ID]) {
			if minutes < fullTimeMinMinute {
				violations += ceilDiv(fullTimeMinMinute-minutes, 60)
			}
		}
	}
	return violations
}
