package planner

import (
	"github.com/shiftforge/shiftcore/internal/constraint"
	"github.com/shiftforge/shiftcore/internal/domain"
	"github.com/shiftforge/shiftcore/internal/shifterr"
	"github.com/shiftforge/shiftcore/internal/solver"
)

// Resolver is the subset of the solver the planner depends on,
// injected to avoid the planner owning solve lifecycle concerns
// (budget, logging) itself.
type Resolver func(sch *domain.Schedule) *solver.Outcome

// MutationResult is what every mutation operation that re-solves
// returns: the updated schedule snapshot plus the re-solve outcome.
type MutationResult struct {
	Schedule *domain.Schedule
	Outcome  *solver.Outcome
}

// AddEmployee appends a new employee to the roster, then:
// employees, pin every clean currently-assigned shift, unpin every
// dirty or null-assigned shift, re-solve, then clear all pins.
func AddEmployee(sch *domain.Schedule, cfg constraint.Config, newEmployee *domain.Employee, resolve Resolver) (*MutationResult, error) {
	if err := sch.AppendEmployee(newEmployee); err != nil {
		return nil, err
	}
	sch.InvalidateScore()

	if err := pinCleanExcept(sch, cfg, nil); err != nil {
		return nil, err
	}

	outcome := resolve(sch)
	if outcome.Err != nil {
		return nil, shifterr.Wrap(shifterr.KindInternal, "internal.resolve_failed", "add_employee re-solve failed", outcome.Err)
	}

	result := &MutationResult{Schedule: outcome.FinalSchedule, Outcome: outcome}
	ClearPins(result.Schedule)
	return result, nil
}

// UpdateSkills replaces an employee's skill set, then computes the
// affected set, unpin it (plus every null-assigned shift), pin
// everything else unconditionally, re-solve, then clear all pins.
func UpdateSkills(sch *domain.Schedule, cfg constraint.Config, employeeID string, newSkills domain.SkillSet, resolve Resolver) (*MutationResult, error) {
	emp, err := sch.IndexEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	oldSkills := emp.Skills

	affected := affectedSetForSkillUpdate(sch, employeeID, oldSkills, newSkills)

	if err := sch.ReplaceEmployeeSkills(employeeID, newSkills); err != nil {
		return nil, err
	}
	sch.InvalidateScore()

	for _, sh := range sch.ShiftsRaw() {
		_, isAffected := affected[sh.ID]
		if isAffected || !sh.IsAssigned() {
			sh.Pinned = false
		} else {
			sh.Pinned = true
		}
	}

	outcome := resolve(sch)
	if outcome.Err != nil {
		return nil, shifterr.Wrap(shifterr.KindInternal, "internal.resolve_failed", "update_skills re-solve failed", outcome.Err)
	}

	result := &MutationResult{Schedule: outcome.FinalSchedule, Outcome: outcome}
	ClearPins(result.Schedule)
	return result, nil
}

// affectedSetForSkillUpdate computes the affected-set
// definition for update_skills.
func affectedSetForSkillUpdate(sch *domain.Schedule, employeeID string, oldSkills, newSkills domain.SkillSet) map[string]struct{} {
	affected := make(map[string]struct{})

	for _, sh := range sch.ShiftsRaw() {
		if !sh.IsAssigned() {
			continue
		}
		if sh.AssigneeID() == employeeID {
			wasSatisfied := oldSkills.Supersets(sh.RequiredSkills)
			nowSatisfied := newSkills.Supersets(sh.RequiredSkills)
			if wasSatisfied != nowSatisfied {
				affected[sh.ID] = struct{}{}
			}
			continue
		}

		// Shifts assigned to someone else: an opportunity if employeeID's
		// new skills would now satisfy it and the current assignment
		// already fails the skill match.
		assignee, err := sch.IndexEmployee(sh.AssigneeID())
		if err != nil {
			continue
		}
		currentlyMismatched := !assignee.Skills.Supersets(sh.RequiredSkills)
		newlySatisfiable := newSkills.Supersets(sh.RequiredSkills)
		if currentlyMismatched && newlySatisfiable {
			affected[sh.ID] = struct{}{}
		}
	}

	return affected
}

// ReassignShift performs a direct point-mutation bypassing the
// solver, legal only if it introduces no skill-match or overlap
// violation.
func ReassignShift(sch *domain.Schedule, shiftID string, newEmployeeID *string) error {
	sh, err := sch.IndexShift(shiftID)
	if err != nil {
		return err
	}

	if newEmployeeID == nil || *newEmployeeID == "" {
		sh.Unassign()
		sch.InvalidateScore()
		return nil
	}

	emp, err := sch.IndexEmployee(*newEmployeeID)
	if err != nil {
		return err
	}

	if len(emp.Skills.Missing(sh.RequiredSkills)) > 0 {
		return shifterr.New(shifterr.KindIllegalMove, "illegal_move.hard_conflict.skill", "assignment would violate skill match")
	}
	for _, other := range sch.ShiftsRaw() {
		if other.ID == sh.ID || !other.IsAssigned() || other.AssigneeID() != *newEmployeeID {
			continue
		}
		if sh.Overlaps(other) {
			return shifterr.New(shifterr.KindIllegalMove, "illegal_move.hard_conflict.overlap", "assignment would violate no-overlap")
		}
	}

	sh.Assign(*newEmployeeID)
	sch.InvalidateScore()
	return nil
}
