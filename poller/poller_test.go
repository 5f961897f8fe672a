package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gotest.tools/assert"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestStartFetchesImmediately(t *testing.T) {
	var calls int32
	p := New("budgets", time.Hour, func(ctx context.Context) ([]int, error) {
		atomic.AddInt32(&calls, 1)
		return []int{1, 2, 3}, nil
	}, nil)

	p.Start(context.Background())
	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, func() bool { return len(p.Items()) == 3 })
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Assert(t, !p.Snapshot().UpdatedAt.IsZero())
}

func TestFetchesNeverOverlap(t *testing.T) {
	var inFlight, maxInFlight, calls int32
	p := New("loans", 2*time.Millisecond, func(ctx context.Context) ([]int, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return []int{int(n)}, nil
	}, nil)

	p.Start(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Refresh(context.Background())
		}()
	}
	wg.Wait()

	waitFor(t, func() bool { return atomic.LoadInt32(&calls) >= 8 })
	p.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}

func TestStopDropsInFlightResult(t *testing.T) {
	started := make(chan struct{})
	p := New("accounts", time.Hour, func(ctx context.Context) ([]int, error) {
		close(started)
		<-ctx.Done()
		return []int{42}, nil
	}, nil)

	p.Start(context.Background())
	<-started
	p.Stop()

	assert.Equal(t, 0, len(p.Items()))

	// stopping twice is harmless
	p.Stop()
}

func TestStopWaitsForRefresh(t *testing.T) {
	var calls int32
	entered := make(chan struct{})
	release := make(chan struct{})
	p := New("maintenances", time.Hour, func(ctx context.Context) ([]int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return []int{1}, nil
		}
		close(entered)
		<-release
		return []int{7}, nil
	}, nil)

	p.Start(context.Background())
	waitFor(t, func() bool { return len(p.Items()) == 1 })

	refreshed := make(chan error, 1)
	go func() { refreshed <- p.Refresh(context.Background()) }()
	<-entered

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a refresh was still fetching")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-stopped

	assert.Assert(t, <-refreshed != nil)
	assert.DeepEqual(t, []int{1}, p.Items())

	// a stopped poller applies nothing
	assert.Equal(t, ErrStopped, p.Refresh(context.Background()))
	assert.DeepEqual(t, []int{1}, p.Items())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFailedFetchKeepsItems(t *testing.T) {
	fail := false
	p := New("rates", time.Hour, func(ctx context.Context) ([]string, error) {
		if fail {
			return nil, errors.New("upstream-down")
		}
		return []string{"a", "b"}, nil
	}, nil)

	assert.Equal(t, nil, p.Refresh(context.Background()))

	fail = true
	err := p.Refresh(context.Background())
	assert.Error(t, err, "upstream-down")

	snap := p.Snapshot()
	assert.Equal(t, 2, len(snap.Items))
	assert.Error(t, snap.Err, "upstream-down")

	fail = false
	assert.Equal(t, nil, p.Refresh(context.Background()))
	assert.Equal(t, nil, p.Snapshot().Err)
}

func TestRefreshCancelledByCaller(t *testing.T) {
	p := New("bookings", time.Hour, func(ctx context.Context) ([]int, error) {
		return []int{1}, nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Refresh(ctx)
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 0, len(p.Items()))
}

func TestItemsIsACopy(t *testing.T) {
	p := New("returns", time.Hour, func(ctx context.Context) ([]int, error) {
		return []int{1, 2}, nil
	}, nil)
	assert.Equal(t, nil, p.Refresh(context.Background()))

	items := p.Items()
	items[0] = 99
	assert.Equal(t, 1, p.Items()[0])
	assert.Equal(t, "returns", p.Name())
	assert.Equal(t, time.Hour, p.Interval())
}
