package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingIndexer struct {
	mu      sync.Mutex
	upserts []UserDocument
	deletes []uint
	err     error
}

func (r *recordingIndexer) IndexUser(_ context.Context, doc UserDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.upserts = append(r.upserts, doc)
	return nil
}

func (r *recordingIndexer) DeleteUser(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.deletes = append(r.deletes, id)
	return nil
}

func (r *recordingIndexer) snapshot() ([]UserDocument, []uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]UserDocument(nil), r.upserts...), append([]uint(nil), r.deletes...)
}

func TestMirror_ProcessesOperations(t *testing.T) {
	t.Parallel()

	idx := &recordingIndexer{}
	m := NewMirror(idx)

	m.Upsert(UserDocument{ID: 1, Username: "alice", Email: "alice@example.com"})
	m.Upsert(UserDocument{ID: 2, Username: "bob", Email: "bob@example.com"})
	m.Delete(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Close(ctx))

	upserts, deletes := idx.snapshot()
	assert.Len(t, upserts, 2)
	assert.Equal(t, []uint{1}, deletes)
}

func TestMirror_IndexerFailureDoesNotPropagate(t *testing.T) {
	t.Parallel()

	idx := &recordingIndexer{err: errors.New("search node down")}
	m := NewMirror(idx)

	// Enqueue must not block or fail even when every index call errors.
	m.Upsert(UserDocument{ID: 1, Username: "alice"})
	m.Delete(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, m.Close(ctx))
}

func TestMirror_NilIndexerIsNoop(t *testing.T) {
	t.Parallel()

	m := NewMirror(nil)
	m.Upsert(UserDocument{ID: 1})
	m.Delete(1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, m.Close(ctx))
}

func TestMirror_OperationsAfterCloseAreDropped(t *testing.T) {
	t.Parallel()

	idx := &recordingIndexer{}
	m := NewMirror(idx)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Close(ctx))

	m.Upsert(UserDocument{ID: 1})
	m.Delete(1)

	upserts, deletes := idx.snapshot()
	assert.Empty(t, upserts)
	assert.Empty(t, deletes)
}

func TestDocumentFromUser(t *testing.T) {
	t.Parallel()

	doc := DocumentFromUser(&models.User{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
		Password: "$2a$10$should-never-be-indexed",
	})
	assert.Equal(t, UserDocument{ID: 7, Username: "alice", Email: "alice@example.com"}, doc)
}
