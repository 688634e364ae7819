// Package jobmanager implements job identity, status, persistence,
// and concurrency around the solver and incremental planner.
package jobmanager

import (
	"time"

	"github.com/shiftforge/shiftcore/internal/domain"
)

// Status is one of the four job lifecycle states, named
// exactly.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusSolving   Status = "SOLVING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// ErrorRecord is the structured failure record attached to a job:
// {code, message, job_id?}.
type ErrorRecord struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
}

// HistorySample is one (elapsed_ms, score) entry in a job's
// best_score_history.
type HistorySample struct {
	ElapsedMS int64        `json:"elapsed_ms"`
	Score     domain.Score `json:"score"`
}

// Job is the managed unit of work.
type Job struct {
	ID               string           `json:"id"`
	Status           Status           `json:"status"`
	SubmittedAt      time.Time        `json:"submitted_at"`
	StartedAt        *time.Time       `json:"started_at"`
	CompletedAt      *time.Time       `json:"completed_at"`
	InputSchedule    *domain.Schedule `json:"input"`
	OutputSchedule   *domain.Schedule `json:"output"`
	BestScoreHistory []HistorySample  `json:"history"`
	Error            *ErrorRecord     `json:"error"`
	LockVersion      int              `json:"lock_version"`
}

// validTransitions encodes the job lifecycle state diagram:
// SCHEDULED -> SOLVING -> {COMPLETED, FAILED}; COMPLETED re-enters
// SOLVING on a subsequent mutation-driven solve.
var validTransitions = map[Status][]Status{
	StatusScheduled: {StatusSolving, StatusCompleted}, // the latter only for a pre-solve cancel
	StatusSolving:   {StatusCompleted, StatusFailed},
	StatusCompleted: {StatusSolving},
	StatusFailed:    {},
}

func canTransition(from, to Status) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CloneForStore returns a deep copy safe to hand to a persistence
// backend or caller without aliasing the manager's in-memory job.
func CloneForStore(j *Job) *Job {
	return j.clone()
}

func (j *Job) clone() *Job {
	cp := *j
	if j.StartedAt != nil {
		t := *j.StartedAt
		cp.StartedAt = &t
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		cp.CompletedAt = &t
	}
	cp.BestScoreHistory = append([]HistorySample(nil), j.BestScoreHistory...)
	// Schedule.Clone drops the cached score; a stored copy keeps it.
	if j.InputSchedule != nil {
		cp.InputSchedule = j.InputSchedule.Clone()
		if j.InputSchedule.Score != nil {
			score := *j.InputSchedule.Score
			cp.InputSchedule.Score = &score
		}
	}
	if j.OutputSchedule != nil {
		cp.OutputSchedule = j.OutputSchedule.Clone()
		if j.OutputSchedule.Score != nil {
			score := *j.OutputSchedule.Score
			cp.OutputSchedule.Score = &score
		}
	}
	if j.Error != nil {
		e := *j.Error
		cp.Error = &e
	}
	return &cp
}
