package jobstore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/shiftforge/shiftcore/internal/jobmanager"
	"github.com/shiftforge/shiftcore/internal/shifterr"
)

// InMemoryBlobStore stands in for JOB_STORAGE_TYPE=blob: an
// object-storage-shaped backend (one object per job, ETag-gated
// conditional writes) without a real cloud SDK behind it, since none
// is in scope here. PutIfMatch simulates the single-writer guarantee a
// real blob store's conditional PUT gives, with an in-process content
// hash standing in for the provider's ETag. All state lives in this
// process's memory; it is not shared across hosts or processes.
type InMemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	etags map[string]string
}

func NewInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{
		blobs: make(map[string][]byte),
		etags: make(map[string]string),
	}
}

func etagOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (b *InMemoryBlobStore) Put(job *jobmanager.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return shifterr.Wrap(shifterr.KindInternal, "internal.marshal_job", "could not marshal job", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[job.ID] = data
	b.etags[job.ID] = etagOf(data)
	return nil
}

// PutIfMatch performs the conditional write a ConditionalStore
// promises: the write only lands if expectedETag still matches the
// currently stored object, an empty expectedETag means "only if
// absent," and a mismatch surfaces as InvalidState so callers can
// retry against the fresh copy.
func (b *InMemoryBlobStore) PutIfMatch(job *jobmanager.Job, expectedETag string) (string, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return "", shifterr.Wrap(shifterr.KindInternal, "internal.marshal_job", "could not marshal job", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	current, exists := b.etags[job.ID]
	if expectedETag == "" {
		if exists {
			return "", shifterr.New(shifterr.KindInvalidState, "conflict.etag", "object already exists")
		}
	} else if !exists || current != expectedETag {
		return "", shifterr.New(shifterr.KindInvalidState, "conflict.etag", "etag does not match current object")
	}

	newETag := etagOf(data)
	b.blobs[job.ID] = data
	b.etags[job.ID] = newETag
	return newETag, nil
}

func (b *InMemoryBlobStore) ETag(id string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	tag, ok := b.etags[id]
	if !ok {
		return "", shifterr.Newf(shifterr.KindNotFound, "not_found.job", "job %q not found", id)
	}
	return tag, nil
}

func (b *InMemoryBlobStore) Get(id string) (*jobmanager.Job, error) {
	b.mu.RLock()
	data, ok := b.blobs[id]
	b.mu.RUnlock()
	if !ok {
		return nil, shifterr.Newf(shifterr.KindNotFound, "not_found.job", "job %q not found", id)
	}
	var job jobmanager.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, shifterr.Wrap(shifterr.KindInternal, "internal.unmarshal_job", "could not unmarshal job", err)
	}
	return &job, nil
}

func (b *InMemoryBlobStore) List() ([]*jobmanager.Job, error) {
	b.mu.RLock()
	ids := make([]string, 0, len(b.blobs))
	for id := range b.blobs {
		ids = append(ids, id)
	}
	b.mu.RUnlock()

	out := make([]*jobmanager.Job, 0, len(ids))
	for _, id := range ids {
		job, err := b.Get(id)
		if err != nil {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

func (b *InMemoryBlobStore) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.blobs[id]; !ok {
		return shifterr.Newf(shifterr.KindNotFound, "not_found.job", "job %q not found", id)
	}
	delete(b.blobs, id)
	delete(b.etags, id)
	return nil
}
