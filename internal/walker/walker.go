// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package walker discovers every leaf below a root path of the secret tree
// and fetches it.
//
// A walk lists the root, then for every returned name either recurses into
// it (names ending with "/") or reads it. Each request runs in its own
// goroutine with no ordering among siblings and no concurrency bound, so
// results arrive in whatever order the server answers. A failed request
// drops only its own subtree.
package walker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/secrets"
	"github.com/MKhiriev/vault-browser/internal/utils"
	"github.com/MKhiriev/vault-browser/models"
)

// Source is the part of the transport a walk needs.
type Source interface {
	List(ctx context.Context, path string) ([]string, error)
	Read(ctx context.Context, path string) (*models.SecretData, error)
}

// EmitFunc receives every fetched leaf. It is called concurrently.
type EmitFunc func(c *secrets.Collection)

// ReportFunc receives every failed request. It is called concurrently.
type ReportFunc func(err error)

// Walker starts walks against a [Source].
type Walker struct {
	source Source
	logger *logger.Logger
}

// New returns a Walker reading from source.
func New(source Source, log *logger.Logger) *Walker {
	return &Walker{source: source, logger: log}
}

// Walk is a running traversal.
type Walk struct {
	id   string
	root secrets.Path

	parent    context.Context
	ctx       context.Context
	cancel    context.CancelFunc
	cancelled atomic.Bool

	wg          sync.WaitGroup
	outstanding atomic.Int64
	emitted     atomic.Int64
	failed      atomic.Int64
	done        chan struct{}

	onFinish FinishFunc

	// written once before done is closed
	endedCancelled bool
}

// ID identifies the walk in logs.
func (w *Walk) ID() string { return w.id }

// Root returns the path the walk started from.
func (w *Walk) Root() secrets.Path { return w.root }

// Outstanding returns the number of requests still in flight.
func (w *Walk) Outstanding() int64 { return w.outstanding.Load() }

// Emitted returns how many leaves were delivered so far.
func (w *Walk) Emitted() int64 { return w.emitted.Load() }

// Failed returns how many requests failed so far.
func (w *Walk) Failed() int64 { return w.failed.Load() }

// Done is closed once every request of the walk has completed.
func (w *Walk) Done() <-chan struct{} { return w.done }

// Wait blocks until the walk is done.
func (w *Walk) Wait() { <-w.done }

// Cancel aborts requests in flight. Results and errors that arrive after
// cancellation are discarded; Done still closes once every goroutine exits.
func (w *Walk) Cancel() {
	w.cancelled.Store(true)
	w.cancel()
}

// Cancelled reports whether the walk was cancelled, either with Cancel or
// through the parent context. A walk that ran to the end is not cancelled.
func (w *Walk) Cancelled() bool {
	select {
	case <-w.done:
		return w.endedCancelled
	default:
		return w.cancelled.Load() || w.parent.Err() != nil
	}
}

// FinishFunc is called once when a walk ends, before Done is closed.
type FinishFunc func(cancelled bool)

// Option configures a single walk.
type Option func(w *Walk)

// WithFinish registers fn to run when the walk ends.
func WithFinish(fn FinishFunc) Option {
	return func(w *Walk) { w.onFinish = fn }
}

// Walk starts a traversal of root and returns immediately. emit and report
// may be nil.
func (wk *Walker) Walk(ctx context.Context, root secrets.Path, emit EmitFunc, report ReportFunc, opts ...Option) *Walk {
	walkCtx, cancel := context.WithCancel(ctx)
	w := &Walk{
		id:     utils.NewID(),
		root:   root,
		parent: ctx,
		ctx:    walkCtx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if emit == nil {
		emit = func(*secrets.Collection) {}
	}
	if report == nil {
		report = func(error) {}
	}

	log := wk.logger.With().Str("walk_id", w.id).Str("root", root.String()).Logger()
	log.Debug().Msg("walk started")
	started := time.Now()

	w.start()
	go wk.list(w, root, emit, report)

	go func() {
		w.wg.Wait()
		if ctx.Err() != nil {
			w.cancelled.Store(true)
		}
		cancelled := w.cancelled.Load()
		w.endedCancelled = cancelled
		cancel()
		if w.onFinish != nil {
			w.onFinish(cancelled)
		}
		log.Info().
			Int64("emitted", w.emitted.Load()).
			Int64("failed", w.failed.Load()).
			Bool("cancelled", cancelled).
			Dur("elapsed", time.Since(started)).
			Msg("walk finished")
		close(w.done)
	}()

	return w
}

func (w *Walk) start() {
	w.wg.Add(1)
	w.outstanding.Add(1)
}

func (w *Walk) finish() {
	w.outstanding.Add(-1)
	w.wg.Done()
}

func (w *Walk) fail(err error, report ReportFunc) {
	if w.ctx.Err() != nil {
		return
	}
	w.failed.Add(1)
	report(err)
}

func (wk *Walker) list(w *Walk, dir secrets.Path, emit EmitFunc, report ReportFunc) {
	defer w.finish()

	names, err := wk.source.List(w.ctx, dir.String())
	if err != nil {
		w.fail(err, report)
		return
	}

	for _, name := range names {
		if name == "" {
			continue
		}
		child := dir.Child(name)

		w.start()
		if child.IsDir() {
			go wk.list(w, child, emit, report)
		} else {
			go wk.read(w, child, emit, report)
		}
	}
}

func (wk *Walker) read(w *Walk, leaf secrets.Path, emit EmitFunc, report ReportFunc) {
	defer w.finish()

	data, err := wk.source.Read(w.ctx, leaf.String())
	if err != nil {
		w.fail(err, report)
		return
	}
	if w.ctx.Err() != nil {
		return
	}

	w.emitted.Add(1)
	emit(secrets.FromServerPayload(leaf, data))
}
