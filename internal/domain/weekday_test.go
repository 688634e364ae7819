package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCivilDateIn_UsesLocalCalendarDayNotUTC(t *testing.T) {
	assert := assert.New(t)
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 2026-01-05 07:30 UTC is still 2026-01-04 in Los Angeles.
	ts := time.Date(2026, 1, 5, 7, 30, 0, 0, time.UTC)

	got := CivilDateIn(ts, loc)
	assert.Equal(CivilDate{Year: 2026, Month: 1, Day: 4}, got)
}

func TestISOWeekOf_MondayAndSundayOfSameWeekMatch(t *testing.T) {
	assert := assert.New(t)
	monday := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	sunday := monday.AddDate(0, 0, 6)

	assert.Equal(ISOWeekOf(monday, time.UTC), ISOWeekOf(sunday, time.UTC))
}

func TestISOWeekOf_NextMondayIsADifferentWeek(t *testing.T) {
	assert := assert.New(t)
	monday := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	nextMonday := monday.AddDate(0, 0, 7)

	assert.NotEqual(ISOWeekOf(monday, time.UTC), ISOWeekOf(nextMonday, time.UTC))
}

func TestWeekdaySet_Has(t *testing.T) {
	assert := assert.New(t)
	s := NewWeekdaySet(time.Monday, time.Tuesday)
	assert.True(s.Has(time.Monday))
	assert.False(s.Has(time.Wednesday))
}
