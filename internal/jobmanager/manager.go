package jobmanager

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shiftforge/shiftcore/internal/constraint"
	"github.com/shiftforge/shiftcore/internal/domain"
	"github.com/shiftforge/shiftcore/internal/planner"
	"github.com/shiftforge/shiftcore/internal/shifterr"
	"github.com/shiftforge/shiftcore/internal/solver"
)

// Store is the persistence contract Manager depends on, kept local to
// avoid an import cycle with jobstore (which depends on this package
// for the Job type).
type Store interface {
	Put(job *Job) error
	Get(id string) (*Job, error)
	List() ([]*Job, error)
	Delete(id string) error
}

// SolveFunc runs one solve to completion; production callers pass
// solver.Solve, tests can substitute a stub.
type SolveFunc func(schedule *domain.Schedule, cfg solver.Config, cancel *solver.CancelToken, ccfg constraint.Config, logger *zap.Logger) *solver.Outcome

const persistRetryAttempts = 3

// Manager owns job identity, the per-job lock table, and the
// mutation/re-solve operations every job lifecycle transition runs
// through. It is the sole writer of Job records; everything else reads
// through Get/List.
type Manager struct {
	store         Store
	constraintCfg constraint.Config
	timeBudget    time.Duration
	logLevel      solver.LogLevel
	logger        *zap.Logger
	solve         SolveFunc

	mu      sync.Mutex // guards locks/cancels maps, not job data itself
	locks   map[string]*sync.RWMutex
	cancels map[string]*solver.CancelToken

	pending chan string
}

func NewManager(store Store, constraintCfg constraint.Config, timeBudget time.Duration, logLevel solver.LogLevel, logger *zap.Logger) *Manager {
	return &Manager{
		store:         store,
		constraintCfg: constraintCfg,
		timeBudget:    timeBudget,
		logLevel:      logLevel,
		logger:        logger,
		solve:         solver.Solve,
		locks:         make(map[string]*sync.RWMutex),
		cancels:       make(map[string]*solver.CancelToken),
		pending:       make(chan string, 256),
	}
}

// Pending returns the channel a worker pool drains job ids from.
func (m *Manager) Pending() <-chan string { return m.pending }

func (m *Manager) lockFor(id string) *sync.RWMutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.RWMutex{}
		m.locks[id] = l
	}
	return l
}

// Submit creates a new job in SCHEDULED status for the given input
// schedule and enqueues it for solving on the worker pool.
func (m *Manager) Submit(schedule *domain.Schedule) (*Job, error) {
	job := &Job{
		ID:            uuid.NewString(),
		Status:        StatusScheduled,
		SubmittedAt:   time.Now(),
		InputSchedule: schedule,
	}
	if err := m.persistWithRetry(job); err != nil {
		return nil, err
	}
	m.enqueue(job.ID)
	return CloneForStore(job), nil
}

func (m *Manager) enqueue(id string) {
	select {
	case m.pending <- id:
	default:
		// The buffer is full: a background goroutine delivers the id once
		// there is room, so a full buffer never blocks the submitting
		// caller.
		go func() { m.pending <- id }()
	}
}

// Get reads job id under its shared per-job lock.
func (m *Manager) Get(id string) (*Job, error) {
	lock := m.lockFor(id)
	lock.RLock()
	defer lock.RUnlock()
	return m.store.Get(id)
}

// List reads every job straight from the store; it takes no per-job
// lock.
func (m *Manager) List() ([]*Job, error) {
	return m.store.List()
}

func (m *Manager) Delete(id string) error {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()
	return m.store.Delete(id)
}

// Cancel requests cancellation of job id. If the job is already
// SOLVING, this cooperatively signals the running solve's cancel
// token. If the job is still SCHEDULED (the solve hasn't started),
// there is no token to signal yet, so Cancel instead short-circuits
// the job straight to COMPLETED with an empty history, skipping
// SOLVING entirely. It is a no-op if the job is already in a terminal
// status.
func (m *Manager) Cancel(id string) {
	m.mu.Lock()
	token, ok := m.cancels[id]
	m.mu.Unlock()
	if ok {
		token.Cancel()
		return
	}

	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	job, err := m.store.Get(id)
	if err != nil {
		return
	}
	// Only a job that is still SCHEDULED (never reached SOLVING) takes
	// this path. A job already SOLVING by the time the per-job lock is
	// acquired here has a cancel token registered under m.mu, and must
	// be cancelled cooperatively through it, not short-circuited here.
	if job.Status != StatusScheduled {
		return
	}

	now := time.Now()
	job.Status = StatusCompleted
	job.CompletedAt = &now
	job.OutputSchedule = job.InputSchedule
	job.BestScoreHistory = nil
	_ = m.persistWithRetry(job)
}

// Cleanup deletes every job in a terminal status (COMPLETED or FAILED)
// whose CompletedAt is older than olderThan. It is the synchronous
// operation a cron-driven sweep or a direct caller both invoke.
func (m *Manager) Cleanup(olderThan time.Time) (int, error) {
	jobs, err := m.store.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, j := range jobs {
		if (j.Status != StatusCompleted && j.Status != StatusFailed) || j.CompletedAt == nil {
			continue
		}
		if j.CompletedAt.Before(olderThan) {
			if err := m.Delete(j.ID); err != nil && !shifterr.IsKind(err, shifterr.KindNotFound) {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// RunSolve executes one queued job's solve to completion: it performs
// the SCHEDULED -> SOLVING -> {COMPLETED, FAILED} transition, runs the
// solver, and persists the result. Called by worker pool goroutines
// draining Pending().
func (m *Manager) RunSolve(id string) {
	lock := m.lockFor(id)
	lock.Lock()
	job, err := m.store.Get(id)
	if err != nil {
		lock.Unlock()
		return
	}
	if !canTransition(job.Status, StatusSolving) {
		lock.Unlock()
		return
	}

	now := time.Now()
	job.Status = StatusSolving
	job.StartedAt = &now
	token := solver.NewCancelToken()
	m.mu.Lock()
	m.cancels[id] = token
	m.mu.Unlock()

	if err := m.persistWithRetry(job); err != nil {
		lock.Unlock()
		m.logger.Error("persist solving transition failed", zap.String("job_id", id), zap.Error(err))
		return
	}
	lock.Unlock()

	scfg := solver.Config{TimeBudget: m.timeBudget, LogLevel: m.logLevel}
	outcome := m.solve(job.InputSchedule, scfg, token, m.constraintCfg, m.logger)

	m.mu.Lock()
	delete(m.cancels, id)
	m.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	job, err = m.store.Get(id)
	if err != nil {
		return
	}
	completed := time.Now()
	job.CompletedAt = &completed
	historySamples := make([]HistorySample, 0, len(outcome.Improvements))
	for _, imp := range outcome.Improvements {
		historySamples = append(historySamples, HistorySample{ElapsedMS: imp.ElapsedMS, Score: imp.Score})
	}
	job.BestScoreHistory = historySamples

	if outcome.Err != nil {
		job.Status = StatusFailed
		job.Error = &ErrorRecord{Code: "internal.solve_failed", Message: outcome.Err.Error(), JobID: id}
	} else {
		job.Status = StatusCompleted
		outcome.FinalSchedule.Score = &outcome.BestScore
		job.OutputSchedule = outcome.FinalSchedule
	}

	if err := m.persistWithRetry(job); err != nil {
		m.logger.Error("persist solve outcome failed", zap.String("job_id", id), zap.Error(err))
	}
}

// RehydrateOnStartup marks every job found in SOLVING at process start
// as FAILED with an interrupted error: a SOLVING record only survives
// a crash mid-solve, since a clean shutdown always reaches a terminal
// status or reverts via cancellation first.
func (m *Manager) RehydrateOnStartup() error {
	jobs, err := m.store.List()
	if err != nil {
		return err
	}
	for _, j := range jobs {
		if j.Status != StatusSolving {
			continue
		}
		lock := m.lockFor(j.ID)
		lock.Lock()
		now := time.Now()
		j.Status = StatusFailed
		j.CompletedAt = &now
		j.Error = &ErrorRecord{Code: "interrupted.process_restart", Message: "job was solving when the process was interrupted", JobID: j.ID}
		err := m.persistWithRetry(j)
		lock.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

// --- incremental mutation passthroughs -----------------------------------------

func (m *Manager) resolver() planner.Resolver {
	return func(sch *domain.Schedule) *solver.Outcome {
		scfg := solver.Config{TimeBudget: m.timeBudget, LogLevel: m.logLevel}
		return m.solve(sch, scfg, solver.NewCancelToken(), m.constraintCfg, m.logger)
	}
}

// AddEmployee appends a new employee to job id's current output (or
// input, if never solved) schedule and re-solves with the pinned
// strategy, transitioning the job back into SOLVING then its terminal
// state synchronously.
func (m *Manager) AddEmployee(id string, newEmployee *domain.Employee) (*Job, error) {
	return m.mutate(id, func(sch *domain.Schedule) (*planner.MutationResult, error) {
		return planner.AddEmployee(sch, m.constraintCfg, newEmployee, m.resolver())
	})
}

func (m *Manager) UpdateSkills(id, employeeID string, newSkills domain.SkillSet) (*Job, error) {
	return m.mutate(id, func(sch *domain.Schedule) (*planner.MutationResult, error) {
		return planner.UpdateSkills(sch, m.constraintCfg, employeeID, newSkills, m.resolver())
	})
}

func (m *Manager) PinShifts(id string, shiftIDs []string, pin bool) (*Job, error) {
	return m.mutate(id, func(sch *domain.Schedule) (*planner.MutationResult, error) {
		if err := planner.PinShifts(sch, shiftIDs, pin); err != nil {
			return nil, err
		}
		return &planner.MutationResult{Schedule: sch, Outcome: &solver.Outcome{FinalSchedule: sch}}, nil
	})
}

// ReassignShift performs a direct point-mutation and does not re-solve
// or change job status: it is the one mutation that bypasses the
// solver entirely. It operates only on a COMPLETED job's stored
// schedule.
func (m *Manager) ReassignShift(id, shiftID string, newEmployeeID *string) (*Job, error) {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	job, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if job.Status != StatusCompleted {
		return nil, shifterr.New(shifterr.KindInvalidState, "invalid_state.not_completed", "direct reassignment requires a completed job")
	}
	sch := job.currentSchedule()
	if sch == nil {
		return nil, shifterr.New(shifterr.KindInvalidState, "invalid_state.no_schedule", "job has no schedule to mutate")
	}
	if err := planner.ReassignShift(sch, shiftID, newEmployeeID); err != nil {
		return nil, err
	}
	job.OutputSchedule = sch
	if err := m.persistWithRetry(job); err != nil {
		return nil, err
	}
	return CloneForStore(job), nil
}

func (j *Job) currentSchedule() *domain.Schedule {
	if j.OutputSchedule != nil {
		return j.OutputSchedule
	}
	return j.InputSchedule
}

func (m *Manager) mutate(id string, op func(sch *domain.Schedule) (*planner.MutationResult, error)) (*Job, error) {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	job, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(job.Status, StatusSolving) {
		return nil, shifterr.New(shifterr.KindInvalidState, "invalid_state.bad_transition", "job cannot accept a mutation from its current status")
	}
	sch := job.currentSchedule()
	if sch == nil {
		return nil, shifterr.New(shifterr.KindInvalidState, "invalid_state.no_schedule", "job has no schedule to mutate")
	}

	solvingNow := time.Now()
	job.Status = StatusSolving
	job.StartedAt = &solvingNow

	// op mutates its argument in place (appends an employee, replaces
	// skills, toggles pins) before the re-solve even runs. Hand it a
	// clone so a failed re-solve never leaves job.OutputSchedule
	// pointing at a half-applied mutation; the job keeps the schedule
	// exactly as it stood before this call until op succeeds.
	working := sch.Clone()

	result, err := op(working)
	if err != nil {
		job.Status = StatusFailed
		completed := time.Now()
		job.CompletedAt = &completed
		job.Error = &ErrorRecord{Code: "illegal_move.mutation_rejected", Message: err.Error(), JobID: id}
		_ = m.persistWithRetry(job)
		return nil, err
	}

	completed := time.Now()
	job.CompletedAt = &completed
	job.Status = StatusCompleted
	job.OutputSchedule = result.Schedule
	if result.Outcome != nil {
		history := make([]HistorySample, 0, len(result.Outcome.Improvements))
		for _, imp := range result.Outcome.Improvements {
			history = append(history, HistorySample{ElapsedMS: imp.ElapsedMS, Score: imp.Score})
		}
		job.BestScoreHistory = history
	}

	if err := m.persistWithRetry(job); err != nil {
		return nil, err
	}
	return CloneForStore(job), nil
}

// persistWithRetry makes up to three attempts in total (the first
// write plus two retries) with exponential backoff between them, since a transient store error (contended
// file lock, momentary blob-store hiccup) should not surface as a lost
// job transition.
func (m *Manager) persistWithRetry(job *Job) error {
	var lastErr error
	for attempt := 0; attempt < persistRetryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(math.Pow(2, float64(attempt))) * 50 * time.Millisecond)
		}
		if err := m.store.Put(job); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return shifterr.Wrap(shifterr.KindInternal, "internal.persist_failed", "could not persist job after retries", lastErr)
}
