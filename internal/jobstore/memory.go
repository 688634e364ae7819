package jobstore

import (
	"sync"

	"github.com/shiftforge/shiftcore/internal/jobmanager"
	"github.com/shiftforge/shiftcore/internal/shifterr"
)

// MemoryStore backs JOB_STORAGE_TYPE=memory: useful for
// tests and single-process deployments with no durability requirement.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*jobmanager.Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*jobmanager.Job)}
}

func (m *MemoryStore) Put(job *jobmanager.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = jobmanager.CloneForStore(job)
	return nil
}

func (m *MemoryStore) Get(id string) (*jobmanager.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, shifterr.Newf(shifterr.KindNotFound, "not_found.job", "job %q not found", id)
	}
	return jobmanager.CloneForStore(j), nil
}

func (m *MemoryStore) List() ([]*jobmanager.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*jobmanager.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, jobmanager.CloneForStore(j))
	}
	return out, nil
}

func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return shifterr.Newf(shifterr.KindNotFound, "not_found.job", "job %q not found", id)
	}
	delete(m.jobs, id)
	return nil
}
