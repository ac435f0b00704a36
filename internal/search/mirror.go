package search

import (
	"context"
	"sync/atomic"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/observability"
)

// Indexer is the write surface of the search index the mirror targets.
type Indexer interface {
	IndexUser(ctx context.Context, doc UserDocument) error
	DeleteUser(ctx context.Context, id uint) error
}

type opKind int

const (
	opUpsert opKind = iota
	opDelete
)

type mirrorOp struct {
	kind opKind
	doc  UserDocument
	id   uint
}

// Mirror forwards user mutations to the search index asynchronously.
// Enqueue never blocks the caller and index failures are never surfaced to
// request paths; the primary store remains the source of truth.
type Mirror struct {
	indexer Indexer
	ops     chan mirrorOp
	quit    chan struct{}
	done    chan struct{}
	closed  atomic.Bool
}

const (
	mirrorQueueSize = 256
	mirrorOpTimeout = 5 * time.Second
)

// NewMirror starts the mirror worker. A nil indexer yields a disabled mirror
// whose methods are no-ops.
func NewMirror(indexer Indexer) *Mirror {
	m := &Mirror{
		indexer: indexer,
		ops:     make(chan mirrorOp, mirrorQueueSize),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if indexer == nil {
		m.closed.Store(true)
		close(m.done)
		return m
	}
	go m.run()
	return m
}

func (m *Mirror) run() {
	defer close(m.done)
	for {
		select {
		case op := <-m.ops:
			m.apply(op)
		case <-m.quit:
			// Drain what was enqueued before shutdown.
			for {
				select {
				case op := <-m.ops:
					m.apply(op)
				default:
					return
				}
			}
		}
	}
}

func (m *Mirror) apply(op mirrorOp) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorOpTimeout)
	defer cancel()

	var err error
	var name string
	switch op.kind {
	case opUpsert:
		name = "upsert"
		err = m.indexer.IndexUser(ctx, op.doc)
	case opDelete:
		name = "delete"
		err = m.indexer.DeleteUser(ctx, op.id)
	}
	if err != nil {
		observability.SearchMirrorFailures.WithLabelValues(name).Inc()
		middleware.Logger.Warn("search mirror operation failed",
			"operation", name,
			"error", err)
	}
}

func (m *Mirror) enqueue(op mirrorOp) {
	if m == nil || m.closed.Load() {
		return
	}
	select {
	case m.ops <- op:
	default:
		observability.SearchMirrorDrops.Inc()
		middleware.Logger.Warn("search mirror queue full, dropping operation")
	}
}

// Upsert schedules an index write for the user's current state.
func (m *Mirror) Upsert(doc UserDocument) {
	m.enqueue(mirrorOp{kind: opUpsert, doc: doc})
}

// Delete schedules removal of the user's document.
func (m *Mirror) Delete(id uint) {
	m.enqueue(mirrorOp{kind: opDelete, id: id})
}

// Close stops accepting operations and waits for the worker to drain the
// queue, up to the context deadline.
func (m *Mirror) Close(ctx context.Context) error {
	if m == nil || !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(m.quit)
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
