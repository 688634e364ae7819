package domain

import (
	"sort"
	"time"

	"github.com/shiftforge/shiftcore/internal/shifterr"
)

// Score is the lexicographic (hard, medium, soft) penalty triple.
// Lower magnitude is better; all three fields are non-negative penalty
// counts, negated only when emitted as a user-facing score.
type Score struct {
	Hard   int
	Medium int
	Soft   int
}

// Less reports whether s is lexicographically better than other:
// hard dominates medium dominates soft.
func (s Score) Less(other Score) bool {
	if s.Hard != other.Hard {
		return s.Hard < other.Hard
	}
	if s.Medium != other.Medium {
		return s.Medium < other.Medium
	}
	return s.Soft < other.Soft
}

func (s Score) IsZero() bool {
	return s.Hard == 0 && s.Medium == 0 && s.Soft == 0
}

// LessOrEqual reports whether s is at least as good as other.
func (s Score) LessOrEqual(other Score) bool {
	return s.Less(other) || s == other
}

// Schedule is the planning solution: it exclusively owns its Employees
// and Shifts. Shift.Assignee is a by-id reference
// resolved through the employee index.
type Schedule struct {
	Timezone  *time.Location
	employees []*Employee
	shifts    []*Shift
	empIndex  map[string]*Employee
	shiftIdx  map[string]*Shift
	Score     *Score
}

// NewSchedule constructs a Schedule, enforcing id uniqueness,
// non-empty ids, valid shift intervals, and that assignee references
// resolve to a known employee. Returns an InvalidInput error on any
// violation.
func NewSchedule(tz *time.Location, employees []*Employee, shifts []*Shift) (*Schedule, error) {
	if tz == nil {
		tz = time.UTC
	}
	empIndex := make(map[string]*Employee, len(employees))
	for _, e := range employees {
		if e.ID == "" {
			return nil, shifterr.InvalidInput("invalid_input.empty_id", "employee id must not be empty")
		}
		if _, dup := empIndex[e.ID]; dup {
			return nil, shifterr.Newf(shifterr.KindInvalidInput, "invalid_input.duplicate_employee_id", "duplicate employee id %q", e.ID)
		}
		empIndex[e.ID] = e
	}

	shiftIdx := make(map[string]*Shift, len(shifts))
	for _, sh := range shifts {
		if sh.ID == "" {
			return nil, shifterr.InvalidInput("invalid_input.empty_id", "shift id must not be empty")
		}
		if _, dup := shiftIdx[sh.ID]; dup {
			return nil, shifterr.Newf(shifterr.KindInvalidInput, "invalid_input.duplicate_shift_id", "duplicate shift id %q", sh.ID)
		}
		if !sh.End.After(sh.Start) {
			return nil, shifterr.Newf(shifterr.KindInvalidInput, "invalid_input.bad_interval", "shift %q: end must be after start", sh.ID)
		}
		if sh.IsAssigned() {
			if _, ok := empIndex[sh.AssigneeID()]; !ok {
				return nil, shifterr.Newf(shifterr.KindInvalidInput, "invalid_input.dangling_assignee", "shift %q references unknown employee %q", sh.ID, sh.AssigneeID())
			}
		}
		shiftIdx[sh.ID] = sh
	}

	return &Schedule{
		Timezone:  tz,
		employees: employees,
		shifts:    shifts,
		empIndex:  empIndex,
		shiftIdx:  shiftIdx,
	}, nil
}

// IndexEmployee resolves an id to its Employee.
func (sch *Schedule) IndexEmployee(id string) (*Employee, error) {
	e, ok := sch.empIndex[id]
	if !ok {
		return nil, shifterr.Newf(shifterr.KindNotFound, "not_found.employee", "employee %q not found", id)
	}
	return e, nil
}

func (sch *Schedule) IndexShift(id string) (*Shift, error) {
	s, ok := sch.shiftIdx[id]
	if !ok {
		return nil, shifterr.Newf(shifterr.KindNotFound, "not_found.shift", "shift %q not found", id)
	}
	return s, nil
}

// Employees returns the employee collection in id-sorted order, so
// that callers needing determinism never depend on insertion order.
func (sch *Schedule) Employees() []*Employee {
	out := append([]*Employee(nil), sch.employees...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Shifts returns the shift collection in id-sorted order.
func (sch *Schedule) Shifts() []*Shift {
	out := append([]*Shift(nil), sch.shifts...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EmployeesRaw/ShiftsRaw expose the underlying slices without a sort,
// for callers (construction heuristic, local search) that impose their
// own deliberate iteration order (e.g. descending priority).
func (sch *Schedule) EmployeesRaw() []*Employee { return sch.employees }
func (sch *Schedule) ShiftsRaw() []*Shift       { return sch.shifts }

// AppendEmployee adds a new employee to the roster.
func (sch *Schedule) AppendEmployee(e *Employee) error {
	if _, dup := sch.empIndex[e.ID]; dup {
		return shifterr.Newf(shifterr.KindInvalidInput, "invalid_input.duplicate_employee_id", "duplicate employee id %q", e.ID)
	}
	sch.employees = append(sch.employees, e)
	sch.empIndex[e.ID] = e
	return nil
}

// ReplaceEmployeeSkills replaces an employee's skill set in place.
func (sch *Schedule) ReplaceEmployeeSkills(employeeID string, skills SkillSet) error {
	e, ok := sch.empIndex[employeeID]
	if !ok {
		return shifterr.Newf(shifterr.KindNotFound, "not_found.employee", "employee %q not found", employeeID)
	}
	e.Skills = skills
	return nil
}

// Clone deep-copies the schedule. A mutated schedule's score must
// always be recomputed from scratch, so Clone never copies Score;
// a mutation always starts from a nil score.
func (sch *Schedule) Clone() *Schedule {
	employees := make([]*Employee, len(sch.employees))
	empIndex := make(map[string]*Employee, len(sch.employees))
	for i, e := range sch.employees {
		cp := e.Clone()
		employees[i] = cp
		empIndex[cp.ID] = cp
	}
	shifts := make([]*Shift, len(sch.shifts))
	shiftIdx := make(map[string]*Shift, len(sch.shifts))
	for i, s := range sch.shifts {
		cp := s.Clone()
		shifts[i] = cp
		shiftIdx[cp.ID] = cp
	}
	return &Schedule{
		Timezone:  sch.Timezone,
		employees: employees,
		shifts:    shifts,
		empIndex:  empIndex,
		shiftIdx:  shiftIdx,
	}
}

// InvalidateScore drops the cached score; any mutation of
// shifts/employees must call this before the schedule is re-evaluated.
func (sch *Schedule) InvalidateScore() {
	sch.Score = nil
}
