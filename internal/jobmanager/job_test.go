package jobmanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/shiftcore/internal/domain"
)

func buildJob(t *testing.T) *Job {
	t.Helper()
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	emp := &domain.Employee{ID: "e1", Skills: domain.NewSkillSet()}
	sh := &domain.Shift{ID: "s1", Start: start, End: start.Add(time.Hour), RequiredSkills: domain.NewSkillSet()}
	sch, err := domain.NewSchedule(time.UTC, []*domain.Employee{emp}, []*domain.Shift{sh})
	require.NoError(t, err)
	now := time.Now()
	return &Job{
		ID:             "job-1",
		Status:         StatusCompleted,
		SubmittedAt:    now,
		StartedAt:      &now,
		CompletedAt:    &now,
		InputSchedule:  sch,
		OutputSchedule: sch.Clone(),
		Error:          &ErrorRecord{Code: "x", Message: "y"},
	}
}

func TestCanTransition_ScheduledToSolvingAllowed(t *testing.T) {
	assert.True(t, canTransition(StatusScheduled, StatusSolving))
}

func TestCanTransition_SolvingToFailedAllowed(t *testing.T) {
	assert.True(t, canTransition(StatusSolving, StatusFailed))
}

func TestCanTransition_CompletedReentersSolving(t *testing.T) {
	assert.True(t, canTransition(StatusCompleted, StatusSolving))
}

func TestCanTransition_FailedIsTerminal(t *testing.T) {
	assert.False(t, canTransition(StatusFailed, StatusSolving))
	assert.False(t, canTransition(StatusFailed, StatusCompleted))
}

func TestCanTransition_ScheduledToFailedIsNotAllowed(t *testing.T) {
	assert.False(t, canTransition(StatusScheduled, StatusFailed))
}

func TestCloneForStore_DeepCopiesSchedulesAndTimestamps(t *testing.T) {
	assert := assert.New(t)
	job := buildJob(t)

	cp := CloneForStore(job)

	assert.NotSame(job.StartedAt, cp.StartedAt)
	assert.NotSame(job.CompletedAt, cp.CompletedAt)
	assert.NotSame(job.Error, cp.Error)
	assert.Equal(*job.Error, *cp.Error)

	// Mutating the clone's output schedule must never reach back into
	// the original job's input schedule: a prior bug aliased the two.
	cp.OutputSchedule.ShiftsRaw()[0].Assign("e1")
	assert.False(job.InputSchedule.ShiftsRaw()[0].IsAssigned())
	assert.False(job.OutputSchedule.ShiftsRaw()[0].IsAssigned())
}

func TestCloneForStore_HistorySliceIsIndependent(t *testing.T) {
	assert := assert.New(t)
	job := buildJob(t)
	job.BestScoreHistory = []HistorySample{{ElapsedMS: 10, Score: domain.Score{}}}

	cp := CloneForStore(job)
	cp.BestScoreHistory[0].ElapsedMS = 999

	assert.Equal(int64(10), job.BestScoreHistory[0].ElapsedMS)
}
