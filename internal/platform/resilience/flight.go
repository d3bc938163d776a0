package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrFlightTimeout is returned to a waiter that gave up before the shared call finished.
var ErrFlightTimeout = errors.New("resilience: waited too long for in-flight call")

// Flight deduplicates concurrent calls for the same key. Waiters block at most
// for the wait passed to Do; the leader always runs fn to completion.
type Flight struct {
	mu    sync.Mutex
	calls map[string]*call
}

type call struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. shared reports whether the result came from
// another caller's execution. A non-positive wait means no bound.
func (g *Flight) Do(ctx context.Context, key string, wait time.Duration, fn func() (any, error)) (val any, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call)
	}

	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		return g.await(ctx, c, wait)
	}

	c := &call{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(c.done)
	}()

	c.val, c.err = fn()
	return c.val, c.err, false
}

func (g *Flight) await(ctx context.Context, c *call, wait time.Duration) (any, error, bool) {
	var timeout <-chan time.Time
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-c.done:
		return c.val, c.err, true
	case <-timeout:
		return nil, ErrFlightTimeout, true
	case <-ctx.Done():
		return nil, ctx.Err(), true
	}
}
