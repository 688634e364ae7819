// Package jobstore implements the memory, filesystem, and blob job
// persistence backends behind one interface.
package jobstore

import "github.com/shiftforge/shiftcore/internal/jobmanager"

// Store is the persistence contract the Job Manager depends on: one
// record per job, atomic writes, never a partial record observable at
// the canonical key.
type Store interface {
	Put(job *jobmanager.Job) error
	Get(id string) (*jobmanager.Job, error)
	List() ([]*jobmanager.Job, error)
	Delete(id string) error
}

// ConditionalStore is the optional single-writer-across-hosts contract
// a blob backend is asked to support via ETags or conditional
// puts, falling back to last-writer-wins when unavailable.
type ConditionalStore interface {
	PutIfMatch(job *jobmanager.Job, expectedETag string) (newETag string, err error)
	ETag(id string) (string, error)
}
