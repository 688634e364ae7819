package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/shiftcore/internal/constraint"
	"github.com/shiftforge/shiftcore/internal/domain"
)

func TestConstruct_AssignsWhenFeasible(t *testing.T) {
	assert := assert.New(t)
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	emp := &domain.Employee{ID: "e1", Skills: domain.NewSkillSet("cpr")}
	sh := &domain.Shift{ID: "s1", Start: start, End: start.Add(time.Hour), RequiredSkills: domain.NewSkillSet("cpr"), Priority: 5}
	sch, err := domain.NewSchedule(time.UTC, []*domain.Employee{emp}, []*domain.Shift{sh})
	require.NoError(t, err)

	construct(sch, constraint.DefaultConfig())

	assert.True(sh.IsAssigned())
	assert.Equal("e1", sh.AssigneeID())
}

func TestConstruct_LeavesUnassignableShiftNull(t *testing.T) {
	assert := assert.New(t)
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	emp := &domain.Employee{ID: "e1", Skills: domain.NewSkillSet()}
	sh := &domain.Shift{ID: "s1", Start: start, End: start.Add(time.Hour), RequiredSkills: domain.NewSkillSet("cpr"), Priority: 5}
	sch, err := domain.NewSchedule(time.UTC, []*domain.Employee{emp}, []*domain.Shift{sh})
	require.NoError(t, err)

	construct(sch, constraint.DefaultConfig())

	assert.False(sh.IsAssigned())
}

func TestConstruct_NeverTouchesPinnedOrAlreadyAssignedShifts(t *testing.T) {
	assert := assert.New(t)
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	e1 := "e1"
	emp := &domain.Employee{ID: "e1", Skills: domain.NewSkillSet()}
	pinned := &domain.Shift{ID: "s1", Start: start, End: start.Add(time.Hour), RequiredSkills: domain.NewSkillSet(), Pinned: true}
	assigned := &domain.Shift{ID: "s2", Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour), RequiredSkills: domain.NewSkillSet(), Assignee: &e1}
	sch, err := domain.NewSchedule(time.UTC, []*domain.Employee{emp}, []*domain.Shift{pinned, assigned})
	require.NoError(t, err)

	construct(sch, constraint.DefaultConfig())

	assert.False(pinned.IsAssigned())
	assert.Equal("e1", assigned.AssigneeID())
}

func TestConstruct_PicksEmployeeThatMinimizesWeeklyMinutesOnTie(t *testing.T) {
	assert := assert.New(t)
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	busy := "busy"
	free := &domain.Employee{ID: "free", Skills: domain.NewSkillSet()}
	loaded := &domain.Employee{ID: "busy", Skills: domain.NewSkillSet()}
	existing := &domain.Shift{ID: "existing", Start: start, End: start.Add(4 * time.Hour), RequiredSkills: domain.NewSkillSet(), Assignee: &busy}
	// 9h after the existing shift ends: no minimum-rest penalty for
	// either employee, so both candidates tie on hard+medium penalty.
	candidate := &domain.Shift{ID: "candidate", Start: start.Add(13 * time.Hour), End: start.Add(14 * time.Hour), RequiredSkills: domain.NewSkillSet(), Priority: 5}

	sch, err := domain.NewSchedule(time.UTC, []*domain.Employee{free, loaded}, []*domain.Shift{existing, candidate})
	require.NoError(t, err)

	construct(sch, constraint.DefaultConfig())

	assert.Equal("free", candidate.AssigneeID())
}
