package summarizer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"article-digest/internal/observability/logging"
	"article-digest/internal/observability/metrics"
	"article-digest/internal/usecase/summarize"
)

// Factory constructs a model.
type Factory func(ctx context.Context) (summarize.Model, error)

// Lazy holds the process-wide model and constructs it on first use.
//
// Concurrent first calls share one construction. A failed construction is
// not cached, so the next call tries again. Construction is detached from the
// caller's cancellation so that one aborted request does not fail the others
// waiting on it; the caller itself stops waiting when its context ends.
type Lazy struct {
	backend string
	factory Factory

	mu    sync.RWMutex
	model summarize.Model
	group singleflight.Group
}

// NewLazy creates a handle that builds its model with factory.
func NewLazy(backend string, factory Factory) *Lazy {
	return &Lazy{backend: backend, factory: factory}
}

// Get returns the model, constructing it if needed.
func (l *Lazy) Get(ctx context.Context) (summarize.Model, error) {
	if m := l.current(); m != nil {
		return m, nil
	}

	ch := l.group.DoChan(l.backend, func() (interface{}, error) {
		if m := l.current(); m != nil {
			return m, nil
		}
		return l.construct(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(summarize.Model), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Lazy) construct(ctx context.Context) (summarize.Model, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	m, err := l.factory(ctx)
	metrics.RecordModelLoad(err == nil)
	if err != nil {
		logger.Error("summarization model construction failed",
			slog.String("backend", l.backend),
			slog.Any("error", err))
		return nil, err
	}

	l.mu.Lock()
	l.model = m
	l.mu.Unlock()

	logger.Info("summarization model ready",
		slog.String("backend", l.backend),
		slog.Duration("duration", time.Since(start)))
	return m, nil
}

func (l *Lazy) current() summarize.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.model
}

// Loaded reports whether the model has been constructed.
func (l *Lazy) Loaded() bool {
	return l.current() != nil
}

// Backend returns the configured backend name.
func (l *Lazy) Backend() string {
	return l.backend
}
