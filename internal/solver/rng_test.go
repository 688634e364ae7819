package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/shiftcore/internal/domain"
)

func buildSchedule(t *testing.T) *domain.Schedule {
	t.Helper()
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	emp := &domain.Employee{ID: "e1", Skills: domain.NewSkillSet()}
	sh := &domain.Shift{ID: "s1", Start: start, End: start.Add(time.Hour), RequiredSkills: domain.NewSkillSet()}
	sch, err := domain.NewSchedule(time.UTC, []*domain.Employee{emp}, []*domain.Shift{sh})
	require.NoError(t, err)
	return sch
}

func TestDeterministicSeed_StableAcrossCollectionOrder(t *testing.T) {
	assert := assert.New(t)
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	e1 := &domain.Employee{ID: "e1", Skills: domain.NewSkillSet()}
	e2 := &domain.Employee{ID: "e2", Skills: domain.NewSkillSet()}
	sh := &domain.Shift{ID: "s1", Start: start, End: start.Add(time.Hour), RequiredSkills: domain.NewSkillSet()}

	schA, err := domain.NewSchedule(time.UTC, []*domain.Employee{e1, e2}, []*domain.Shift{sh})
	require.NoError(t, err)
	schB, err := domain.NewSchedule(time.UTC, []*domain.Employee{e2, e1}, []*domain.Shift{sh})
	require.NoError(t, err)

	assert.Equal(deterministicSeed(schA), deterministicSeed(schB))
}

func TestNewRand_HonorsExplicitSeed(t *testing.T) {
	assert := assert.New(t)
	sch := buildSchedule(t)
	explicit := int64(42)

	r1 := newRand(Config{Seed: &explicit}, sch)
	r2 := newRand(Config{Seed: &explicit}, sch)

	assert.Equal(r1.Int63(), r2.Int63())
}

func TestNewRand_DeterministicWithoutSeed(t *testing.T) {
	assert := assert.New(t)
	sch := buildSchedule(t)

	r1 := newRand(Config{}, sch)
	r2 := newRand(Config{}, sch)

	assert.Equal(r1.Int63(), r2.Int63())
}
