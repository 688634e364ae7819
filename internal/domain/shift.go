package domain

import "time"

// Shift is the planning entity: Assignee is the planning variable the
// solver and planner mutate.
type Shift struct {
	ID             string
	Start          time.Time
	End            time.Time
	RequiredSkills SkillSet
	Location       string
	Priority       int // 1..10, 1 = highest
	Pinned         bool
	Assignee       *string // by-id reference, non-owning
}

// DurationMinutes returns the shift length in whole minutes.
func (s *Shift) DurationMinutes() int {
	return int(s.End.Sub(s.Start).Minutes())
}

// Overlaps reports whether the [start,end) intervals of s and other
// intersect on a common instant.
func (s *Shift) Overlaps(other *Shift) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// WeekdayIn returns the shift's start weekday in loc.
func (s *Shift) WeekdayIn(loc *time.Location) Weekday {
	return s.Start.In(loc).Weekday()
}

func (s *Shift) IsAssigned() bool {
	return s.Assignee != nil && *s.Assignee != ""
}

func (s *Shift) AssigneeID() string {
	if s.Assignee == nil {
		return ""
	}
	return *s.Assignee
}

// Assign sets the planning variable. Callers outside the solver/planner
// must not call this on a Pinned shift; the solver and planner enforce
// that invariant at the move-application boundary, not here.
func (s *Shift) Assign(employeeID string) {
	id := employeeID
	s.Assignee = &id
}

func (s *Shift) Unassign() {
	s.Assignee = nil
}

func (s *Shift) Clone() *Shift {
	cp := *s
	cp.RequiredSkills = s.RequiredSkills.Clone()
	if s.Assignee != nil {
		id := *s.Assignee
		cp.Assignee = &id
	}
	return &cp
}
