package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// The wire DTOs below implement the schedule submission
// payload shape in JSON and back the (de)serialization the job store
// persists. SkillSet/WeekdaySet/CivilDate have no natural JSON
// encoding of their own, so Schedule owns the translation instead of
// spreading ad-hoc json tags across the domain types.

type employeeWire struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Skills            []string `json:"skills"`
	PreferredDaysOff  []string `json:"preferred_days_off"`
	PreferredWorkDays []string `json:"preferred_work_days"`
	UnavailableDates  []string `json:"unavailable_dates"`
	Tags              []string `json:"tags"`
}

type shiftWire struct {
	ID             string    `json:"id"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	RequiredSkills []string  `json:"required_skills"`
	Location       string    `json:"location,omitempty"`
	Priority       int       `json:"priority"`
	Pinned         bool      `json:"pinned"`
	Assignee       *string   `json:"assignee"`
}

type scoreWire struct {
	Hard   int `json:"hard"`
	Medium int `json:"medium"`
	Soft   int `json:"soft"`
}

type scheduleWire struct {
	Timezone  string         `json:"timezone"`
	Employees []employeeWire `json:"employees"`
	Shifts    []shiftWire    `json:"shifts"`
	Score     *scoreWire     `json:"score"`
}

var weekdayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func weekdayToName(d time.Weekday) string { return weekdayNames[d] }

func weekdayFromName(name string) (time.Weekday, error) {
	for i, n := range weekdayNames {
		if n == name {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("domain: unknown weekday %q", name)
}

func civilDateToString(d CivilDate) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func civilDateFromString(s string) (CivilDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CivilDate{}, fmt.Errorf("domain: invalid civil date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}, nil
}

func (e *Employee) toWire() employeeWire {
	w := employeeWire{
		ID:     e.ID,
		Name:   e.Name,
		Skills: e.Skills.Slice(),
		Tags:   e.Tags.Slice(),
	}
	for d := range e.PreferredDaysOff {
		w.PreferredDaysOff = append(w.PreferredDaysOff, weekdayToName(d))
	}
	for d := range e.PreferredWorkDays {
		w.PreferredWorkDays = append(w.PreferredWorkDays, weekdayToName(d))
	}
	for d := range e.UnavailableDates {
		w.UnavailableDates = append(w.UnavailableDates, civilDateToString(d))
	}
	return w
}

func employeeFromWire(w employeeWire) (*Employee, error) {
	daysOff := make(WeekdaySet, len(w.PreferredDaysOff))
	for _, name := range w.PreferredDaysOff {
		d, err := weekdayFromName(name)
		if err != nil {
			return nil, err
		}
		daysOff[d] = struct{}{}
	}
	workDays := make(WeekdaySet, len(w.PreferredWorkDays))
	for _, name := range w.PreferredWorkDays {
		d, err := weekdayFromName(name)
		if err != nil {
			return nil, err
		}
		workDays[d] = struct{}{}
	}
	dates := make(map[CivilDate]struct{}, len(w.UnavailableDates))
	for _, s := range w.UnavailableDates {
		d, err := civilDateFromString(s)
		if err != nil {
			return nil, err
		}
		dates[d] = struct{}{}
	}
	return &Employee{
		ID:                w.ID,
		Name:              w.Name,
		Skills:            NewSkillSet(w.Skills...),
		PreferredDaysOff:  daysOff,
		PreferredWorkDays: workDays,
		UnavailableDates:  dates,
		Tags:              NewSkillSet(w.Tags...),
	}, nil
}

func (s *Shift) toWire() shiftWire {
	return shiftWire{
		ID:             s.ID,
		Start:          s.Start,
		End:            s.End,
		RequiredSkills: s.RequiredSkills.Slice(),
		Location:       s.Location,
		Priority:       s.Priority,
		Pinned:         s.Pinned,
		Assignee:       s.Assignee,
	}
}

func shiftFromWire(w shiftWire) *Shift {
	return &Shift{
		ID:             w.ID,
		Start:          w.Start,
		End:            w.End,
		RequiredSkills: NewSkillSet(w.RequiredSkills...),
		Location:       w.Location,
		Priority:       w.Priority,
		Pinned:         w.Pinned,
		Assignee:       w.Assignee,
	}
}

// MarshalJSON produces the schedule submission payload shape.
func (sch *Schedule) MarshalJSON() ([]byte, error) {
	w := scheduleWire{Timezone: sch.Timezone.String()}
	for _, e := range sch.employees {
		w.Employees = append(w.Employees, e.toWire())
	}
	for _, s := range sch.shifts {
		w.Shifts = append(w.Shifts, s.toWire())
	}
	if sch.Score != nil {
		w.Score = &scoreWire{Hard: sch.Score.Hard, Medium: sch.Score.Medium, Soft: sch.Score.Soft}
	}
	return json.Marshal(w)
}

// UnmarshalJSON is the inverse of MarshalJSON. It bypasses NewSchedule's
// validation deliberately: a schedule round-tripped through the job
// store was already valid when first accepted, and the round trip must
// stay structurally exact even for a schedule mid-mutation
// (e.g. with a dangling assignee reference) that NewSchedule's strict
// checks would reject.
func (sch *Schedule) UnmarshalJSON(data []byte) error {
	var w scheduleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		loc = time.UTC
	}

	employees := make([]*Employee, 0, len(w.Employees))
	empIndex := make(map[string]*Employee, len(w.Employees))
	for _, ew := range w.Employees {
		e, err := employeeFromWire(ew)
		if err != nil {
			return err
		}
		employees = append(employees, e)
		empIndex[e.ID] = e
	}

	shifts := make([]*Shift, 0, len(w.Shifts))
	shiftIdx := make(map[string]*Shift, len(w.Shifts))
	for _, sw := range w.Shifts {
		s := shiftFromWire(sw)
		shifts = append(shifts, s)
		shiftIdx[s.ID] = s
	}

	sch.Timezone = loc
	sch.employees = employees
	sch.shifts = shifts
	sch.empIndex = empIndex
	sch.shiftIdx = shiftIdx
	if w.Score != nil {
		sch.Score = &Score{Hard: w.Score.Hard, Medium: w.Score.Medium, Soft: w.Score.Soft}
	}
	return nil
}
