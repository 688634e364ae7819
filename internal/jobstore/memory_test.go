package jobstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/shiftcore/internal/domain"
	"github.com/shiftforge/shiftcore/internal/jobmanager"
)

func buildStoreTestJob(t *testing.T, id string) *jobmanager.Job {
	t.Helper()
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	emp := &domain.Employee{ID: "e1", Skills: domain.NewSkillSet()}
	sh := &domain.Shift{ID: "s1", Start: start, End: start.Add(time.Hour), RequiredSkills: domain.NewSkillSet()}
	sch, err := domain.NewSchedule(time.UTC, []*domain.Employee{emp}, []*domain.Shift{sh})
	require.NoError(t, err)
	return &jobmanager.Job{
		ID:            id,
		Status:        jobmanager.StatusScheduled,
		SubmittedAt:   time.Now(),
		InputSchedule: sch,
	}
}

func TestMemoryStore_PutGetRoundTrips(t *testing.T) {
	assert := assert.New(t)
	store := NewMemoryStore()
	job := buildStoreTestJob(t, "job-1")

	require.NoError(t, store.Put(job))
	got, err := store.Get("job-1")
	require.NoError(t, err)
	assert.Equal(job.ID, got.ID)
	assert.Equal(job.Status, got.Status)
}

func TestMemoryStore_PutDeepCopiesSoLaterMutationDoesNotLeak(t *testing.T) {
	assert := assert.New(t)
	store := NewMemoryStore()
	job := buildStoreTestJob(t, "job-1")
	require.NoError(t, store.Put(job))

	job.Status = jobmanager.StatusFailed

	got, err := store.Get("job-1")
	require.NoError(t, err)
	assert.Equal(jobmanager.StatusScheduled, got.Status)
}

func TestMemoryStore_GetUnknownReturnsNotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get("missing")
	require.Error(t, err)
}

func TestMemoryStore_DeleteRemovesJob(t *testing.T) {
	store := NewMemoryStore()
	job := buildStoreTestJob(t, "job-1")
	require.NoError(t, store.Put(job))

	require.NoError(t, store.Delete("job-1"))
	_, err := store.Get("job-1")
	require.Error(t, err)
}

func TestMemoryStore_DeleteUnknownReturnsNotFound(t *testing.T) {
	store := NewMemoryStore()
	err := store.Delete("missing")
	require.Error(t, err)
}

func TestMemoryStore_ListReturnsAllJobs(t *testing.T) {
	assert := assert.New(t)
	store := NewMemoryStore()
	require.NoError(t, store.Put(buildStoreTestJob(t, "a")))
	require.NoError(t, store.Put(buildStoreTestJob(t, "b")))

	jobs, err := store.List()
	require.NoError(t, err)
	assert.Len(jobs, 2)
}
