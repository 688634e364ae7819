package jobstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/shiftforge/shiftcore/internal/jobmanager"
	"github.com/shiftforge/shiftcore/internal/shifterr"
)

// FilesystemStore backs JOB_STORAGE_TYPE=filesystem (the default): one
// file per job at <root>/<job_id>.json, written via a
// temp-file-then-rename so a crash never leaves a partial file
// observable at the canonical path.
type FilesystemStore struct {
	root string
	mu   sync.Mutex // serializes writes; per-job locking lives in the job manager
}

func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, shifterr.Wrap(shifterr.KindInternal, "internal.store_init", "could not create job storage directory", err)
	}
	return &FilesystemStore{root: root}, nil
}

func (f *FilesystemStore) path(id string) string {
	return filepath.Join(f.root, id+".json")
}

func (f *FilesystemStore) Put(job *jobmanager.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return shifterr.Wrap(shifterr.KindInternal, "internal.marshal_job", "could not marshal job", err)
	}

	final := f.path(job.ID)
	tmp := final + ".tmp"

	handle, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return shifterr.Wrap(shifterr.KindInternal, "internal.store_write", "could not open temp job file", err)
	}
	if _, err := handle.Write(data); err != nil {
		handle.Close()
		return shifterr.Wrap(shifterr.KindInternal, "internal.store_write", "could not write temp job file", err)
	}
	if err := handle.Sync(); err != nil {
		handle.Close()
		return shifterr.Wrap(shifterr.KindInternal, "internal.store_write", "could not fsync temp job file", err)
	}
	if err := handle.Close(); err != nil {
		return shifterr.Wrap(shifterr.KindInternal, "internal.store_write", "could not close temp job file", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return shifterr.Wrap(shifterr.KindInternal, "internal.store_write", "could not rename temp job file into place", err)
	}
	return nil
}

func (f *FilesystemStore) Get(id string) (*jobmanager.Job, error) {
	data, err := os.ReadFile(f.path(id))
	if os.IsNotExist(err) {
		return nil, shifterr.Newf(shifterr.KindNotFound, "not_found.job", "job %q not found", id)
	}
	if err != nil {
		return nil, shifterr.Wrap(shifterr.KindInternal, "internal.store_read", "could not read job file", err)
	}
	var job jobmanager.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, shifterr.Wrap(shifterr.KindInternal, "internal.unmarshal_job", "could not unmarshal job", err)
	}
	return &job, nil
}

func (f *FilesystemStore) List() ([]*jobmanager.Job, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, shifterr.Wrap(shifterr.KindInternal, "internal.store_list", "could not list job storage directory", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".tmp") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(ids)

	out := make([]*jobmanager.Job, 0, len(ids))
	for _, id := range ids {
		job, err := f.Get(id)
		if err != nil {
			continue // a job deleted between ReadDir and Get is not an error
		}
		out = append(out, job)
	}
	return out, nil
}

func (f *FilesystemStore) Delete(id string) error {
	if err := os.Remove(f.path(id)); err != nil {
		if os.IsNotExist(err) {
			return shifterr.Newf(shifterr.KindNotFound, "not_found.job", "job %q not found", id)
		}
		return shifterr.Wrap(shifterr.KindInternal, "internal.store_delete", "could not delete job file", err)
	}
	return nil
}
