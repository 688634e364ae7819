package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployee_IsUnavailableMatchesOnCivilDateOnly(t *testing.T) {
	assert := assert.New(t)
	e := &Employee{
		ID:               "e1",
		UnavailableDates: map[CivilDate]struct{}{{Year: 2026, Month: 1, Day: 5}: {}},
	}
	assert.True(e.IsUnavailable(CivilDate{Year: 2026, Month: 1, Day: 5}))
	assert.False(e.IsUnavailable(CivilDate{Year: 2026, Month: 1, Day: 6}))
}

func TestEmployee_HasAllRequiresEveryRequiredSkill(t *testing.T) {
	assert := assert.New(t)
	e := &Employee{ID: "e1", Skills: NewSkillSet("cpr", "forklift")}
	assert.True(e.HasAll(NewSkillSet("cpr")))
	assert.False(e.HasAll(NewSkillSet("cpr", "first-aid")))
}

func TestEmployee_HasTag(t *testing.T) {
	assert := assert.New(t)
	e := &Employee{ID: "e1", Tags: NewSkillSet("Full-time")}
	assert.True(e.HasTag("Full-time"))
	assert.False(e.HasTag("Part-time"))
}

func TestEmployee_CloneIsIndependentOfOriginal(t *testing.T) {
	assert := assert.New(t)
	e := &Employee{
		ID:                "e1",
		Skills:            NewSkillSet("cpr"),
		Tags:              NewSkillSet("Full-time"),
		PreferredDaysOff:  NewWeekdaySet(1),
		PreferredWorkDays: NewWeekdaySet(2),
		UnavailableDates:  map[CivilDate]struct{}{{Year: 2026, Month: 1, Day: 5}: {}},
	}

	cp := e.Clone()
	cp.Skills["forklift"] = struct{}{}
	cp.UnavailableDates[CivilDate{Year: 2026, Month: 1, Day: 6}] = struct{}{}

	assert.False(e.Skills.Has("forklift"))
	assert.False(e.IsUnavailable(CivilDate{Year: 2026, Month: 1, Day: 6}))
}
