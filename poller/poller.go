package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrStopped is returned by Refresh once the poller has been stopped.
var ErrStopped = errors.New("poller-stopped")

type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Snapshot is the last known state of a polled collection.
type Snapshot[T any] struct {
	Items     []T
	UpdatedAt time.Time
	Err       error
}

// Poller refetches a collection on a fixed interval. Fetches never overlap:
// ticks firing while a request is in flight are dropped, and Refresh waits for
// its turn. Stop cancels the in-flight request, waits for any fetch still
// holding the turn, and no result is applied after it returns.
type Poller[T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[T]
	log      *zap.Logger

	fetchMu sync.Mutex

	mu        sync.RWMutex
	items     []T
	updatedAt time.Time
	lastErr   error
	cancel    context.CancelFunc
	done      chan struct{}
	ctx       context.Context
	stopped   bool
}

func New[T any](name string, interval time.Duration, fetch FetchFunc[T], log *zap.Logger) *Poller[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
		log:      log.With(zap.String("poller", name)),
	}
}

func (p *Poller[T]) Name() string {
	return p.name
}

func (p *Poller[T]) Interval() time.Duration {
	return p.interval
}

// Start launches the polling loop. The first fetch happens immediately.
// Calling Start on a running poller does nothing.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.ctx = ctx
	p.cancel = cancel
	p.stopped = false
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go p.loop(ctx, done)
}

// Stop cancels the loop and any in-flight request, then waits for the loop and
// any concurrent Refresh to finish. Later Refresh calls return ErrStopped until
// the poller is started again.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.stopped = true
	p.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	p.fetchMu.Lock()
	p.fetchMu.Unlock()
}

func (p *Poller[T]) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick skips when another fetch is still running.
func (p *Poller[T]) tick(ctx context.Context) {
	if !p.fetchMu.TryLock() {
		p.log.Debug("tick superseded by in-flight fetch")
		return
	}
	defer p.fetchMu.Unlock()

	p.run(ctx)
}

// Refresh fetches now and returns the fetch error. It is the resync after a mutation.
func (p *Poller[T]) Refresh(ctx context.Context) error {
	p.mu.RLock()
	loopCtx := p.ctx
	running := p.cancel != nil
	stopped := p.stopped
	p.mu.RUnlock()

	if stopped {
		return ErrStopped
	}

	if running {
		// tie the request to the loop as well, so Stop aborts it
		var cancel context.CancelFunc
		ctx, cancel = mergeCancel(ctx, loopCtx)
		defer cancel()
	}

	p.fetchMu.Lock()
	defer p.fetchMu.Unlock()

	return p.run(ctx)
}

func (p *Poller[T]) run(ctx context.Context) error {
	items, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	// cancelled by Stop or by the caller: drop the result
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if p.stopped {
		return ErrStopped
	}

	if err != nil {
		p.lastErr = err
		p.log.Error("fetch failed", zap.Error(err))
		return err
	}

	p.items = items
	p.updatedAt = time.Now()
	p.lastErr = nil
	return nil
}

// Items returns a copy of the current collection.
func (p *Poller[T]) Items() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Poller[T]) Snapshot() Snapshot[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()

	items := make([]T, len(p.items))
	copy(items, p.items)
	return Snapshot[T]{Items: items, UpdatedAt: p.updatedAt, Err: p.lastErr}
}

func mergeCancel(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
