package domain

import "time"

// Weekday mirrors time.Weekday but preferred_days_off/
// preferred_work_days sets are always spelled Mon…Sun; we keep this alias
// so call sites read as domain vocabulary rather than stdlib plumbing.
type Weekday = time.Weekday

// WeekdaySet is a set over {Mon…Sun}.
type WeekdaySet map[time.Weekday]struct{}

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	s := make(WeekdaySet, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	_, ok := s[d]
	return ok
}

// CivilDate is a calendar date with no time-of-day or zone component,
// compared by year/month/day only.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// CivilDateIn derives t's civil date in loc ("compare
// unavailable_dates by civil date in the schedule's timezone").
func CivilDateIn(t time.Time, loc *time.Location) CivilDate {
	local := t.In(loc)
	y, m, d := local.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// ISOWeek identifies an ISO-8601 week (Monday start, week 1 contains the
// year's first Thursday).
type ISOWeek struct {
	Year int
	Week int
}

func ISOWeekOf(t time.Time, loc *time.Location) ISOWeek {
	y, w := t.In(loc).ISOWeek()
	return ISOWeek{Year: y, Week: w}
}
