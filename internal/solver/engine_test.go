package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shiftforge/shiftcore/internal/constraint"
	"github.com/shiftforge/shiftcore/internal/domain"
)

func TestSolve_TerminatesByOptimumOnTriviallyFeasibleSchedule(t *testing.T) {
	assert := assert.New(t)
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	emp := &domain.Employee{ID: "e1", Skills: domain.NewSkillSet("cpr")}
	sh := &domain.Shift{ID: "s1", Start: start, End: start.Add(8 * time.Hour), RequiredSkills: domain.NewSkillSet("cpr"), Priority: 5}
	sch, err := domain.NewSchedule(time.UTC, []*domain.Employee{emp}, []*domain.Shift{sh})
	require.NoError(t, err)

	// An 8h day against an 8h weekly target leaves no fair-distribution
	// or weekly-target penalty, so a zero score is reachable.
	ccfg := constraint.DefaultConfig()
	ccfg.PartTimeWeeklyTargetMinutes = 8 * 60

	cfg := Config{TimeBudget: 5 * time.Second, LogLevel: LogInfo}
	outcome := Solve(sch, cfg, NewCancelToken(), ccfg, zap.NewNop())

	assert.Equal(TerminatedByOptimum, outcome.TerminatedBy)
	assert.True(outcome.BestScore.IsZero())
	assert.NoError(outcome.Err)
}

func TestSolve_TerminatesByBudgetWhenUnsatisfiable(t *testing.T) {
	assert := assert.New(t)
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	// No employee has the required skill: the schedule can never reach
	// a zero score, so the walker must run out the clock.
	emp := &domain.Employee{ID: "e1", Skills: domain.NewSkillSet()}
	sh := &domain.Shift{ID: "s1", Start: start, End: start.Add(time.Hour), RequiredSkills: domain.NewSkillSet("cpr"), Priority: 5}
	sch, err := domain.NewSchedule(time.UTC, []*domain.Employee{emp}, []*domain.Shift{sh})
	require.NoError(t, err)

	cfg := Config{TimeBudget: 150 * time.Millisecond, LogLevel: LogInfo}
	outcome := Solve(sch, cfg, NewCancelToken(), constraint.DefaultConfig(), zap.NewNop())

	assert.Equal(TerminatedByBudget, outcome.TerminatedBy)
}

func TestSolve_TerminatesByCancelWhenTokenCancelledImmediately(t *testing.T) {
	assert := assert.New(t)
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	emp := &domain.Employee{ID: "e1", Skills: domain.NewSkillSet()}
	sh := &domain.Shift{ID: "s1", Start: start, End: start.Add(time.Hour), RequiredSkills: domain.NewSkillSet("cpr"), Priority: 5}
	sch, err := domain.NewSchedule(time.UTC, []*domain.Employee{emp}, []*domain.Shift{sh})
	require.NoError(t, err)

	cancel := NewCancelToken()
	cancel.Cancel()

	cfg := Config{TimeBudget: 10 * time.Second, LogLevel: LogInfo}
	outcome := Solve(sch, cfg, cancel, constraint.DefaultConfig(), zap.NewNop())

	assert.Equal(TerminatedByCancel, outcome.TerminatedBy)
}

func TestSolve_RecordsImprovementHistoryWhenStartingInfeasible(t *testing.T) {
	assert := assert.New(t)
	monday := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	e1 := "e1"
	emps := []*domain.Employee{
		{ID: "e1", Skills: domain.NewSkillSet("cpr")},
		{ID: "e2", Skills: domain.NewSkillSet("cpr")},
	}
	// Both shifts pre-assigned to e1: overlapping, so the schedule
	// starts with a hard violation the walker should resolve by moving
	// one of them onto e2.
	s1 := &domain.Shift{ID: "s1", Start: monday, End: monday.Add(8 * time.Hour), RequiredSkills: domain.NewSkillSet("cpr"), Priority: 5, Assignee: &e1}
	s2 := &domain.Shift{ID: "s2", Start: monday.Add(time.Hour), End: monday.Add(9 * time.Hour), RequiredSkills: domain.NewSkillSet("cpr"), Priority: 5, Assignee: &e1}
	sch, err := domain.NewSchedule(time.UTC, emps, []*domain.Shift{s1, s2})
	require.NoError(t, err)

	// With one 8h shift each against an 8h weekly target, the split
	// assignment scores zero, so the walker can reach the optimum.
	ccfg := constraint.DefaultConfig()
	ccfg.PartTimeWeeklyTargetMinutes = 8 * 60

	cfg := Config{TimeBudget: 2 * time.Second, LogLevel: LogInfo}
	outcome := Solve(sch, cfg, NewCancelToken(), ccfg, zap.NewNop())

	assert.Equal(TerminatedByOptimum, outcome.TerminatedBy)
	assert.NotEmpty(outcome.Improvements)
}

func TestSolve_NegativeBudgetTerminatesImmediately(t *testing.T) {
	assert := assert.New(t)
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	sh := &domain.Shift{ID: "s1", Start: start, End: start.Add(time.Hour), RequiredSkills: domain.NewSkillSet()}
	sch, err := domain.NewSchedule(time.UTC, nil, []*domain.Shift{sh})
	require.NoError(t, err)

	cfg := Config{TimeBudget: -time.Second, LogLevel: LogInfo}
	outcome := Solve(sch, cfg, NewCancelToken(), constraint.DefaultConfig(), zap.NewNop())

	assert.Equal(TerminatedByBudget, outcome.TerminatedBy)
	assert.NotNil(outcome.FinalSchedule)
}
