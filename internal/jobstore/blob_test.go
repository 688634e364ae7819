package jobstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBlobStore_PutGetRoundTrips(t *testing.T) {
	assert := assert.New(t)
	store := NewInMemoryBlobStore()
	job := buildStoreTestJob(t, "job-1")

	require.NoError(t, store.Put(job))
	got, err := store.Get("job-1")
	require.NoError(t, err)
	assert.Equal(job.ID, got.ID)
}

func TestInMemoryBlobStore_PutIfMatchSucceedsOnFirstWriteWithEmptyETag(t *testing.T) {
	store := NewInMemoryBlobStore()
	job := buildStoreTestJob(t, "job-1")

	etag, err := store.PutIfMatch(job, "")
	require.NoError(t, err)
	require.NotEmpty(t, etag)
}

func TestInMemoryBlobStore_PutIfMatchRejectsEmptyETagWhenObjectExists(t *testing.T) {
	store := NewInMemoryBlobStore()
	job := buildStoreTestJob(t, "job-1")
	require.NoError(t, store.Put(job))

	_, err := store.PutIfMatch(job, "")
	require.Error(t, err)
}

func TestInMemoryBlobStore_PutIfMatchSucceedsWhenETagMatchesCurrent(t *testing.T) {
	assert := assert.New(t)
	store := NewInMemoryBlobStore()
	job := buildStoreTestJob(t, "job-1")
	first, err := store.PutIfMatch(job, "")
	require.NoError(t, err)

	job.Status = "SOLVING"
	second, err := store.PutIfMatch(job, first)
	require.NoError(t, err)
	assert.NotEqual(first, second)
}

func TestInMemoryBlobStore_PutIfMatchRejectsStaleETag(t *testing.T) {
	store := NewInMemoryBlobStore()
	job := buildStoreTestJob(t, "job-1")
	_, err := store.PutIfMatch(job, "")
	require.NoError(t, err)

	_, err = store.PutIfMatch(job, "stale-etag")
	require.Error(t, err)
}

func TestInMemoryBlobStore_ETagReflectsCurrentContent(t *testing.T) {
	assert := assert.New(t)
	store := NewInMemoryBlobStore()
	job := buildStoreTestJob(t, "job-1")
	require.NoError(t, store.Put(job))

	tag, err := store.ETag("job-1")
	require.NoError(t, err)
	assert.NotEmpty(tag)
}

func TestInMemoryBlobStore_DeleteRemovesBlobAndETag(t *testing.T) {
	store := NewInMemoryBlobStore()
	job := buildStoreTestJob(t, "job-1")
	require.NoError(t, store.Put(job))

	require.NoError(t, store.Delete("job-1"))
	_, err := store.Get("job-1")
	require.Error(t, err)
	_, err = store.ETag("job-1")
	require.Error(t, err)
}
