package search

import (
	"context"
	"sync"
	"time"
)

// DefaultQuiet is the quiet period between the last keystroke and the fetch.
const DefaultQuiet = 500 * time.Millisecond

// Debouncer runs a fetch only after the query has been stable for the quiet
// period. Each new Query supersedes the previous one: a superseded timer
// never fires, and results from a superseded fetch are dropped rather than
// delivered out of order. Requests are not hard-cancelled.
type Debouncer[T any] struct {
	quiet   time.Duration
	fetch   func(ctx context.Context, query string) (T, error)
	deliver func(query string, result T, err error)

	mu    sync.Mutex
	timer *time.Timer
	seq   int
}

// NewDebouncer wires a fetch function to a delivery callback. deliver runs on
// the fetch goroutine; callers hand off to their own loop if ordering with
// other events matters.
func NewDebouncer[T any](quiet time.Duration, fetch func(ctx context.Context, query string) (T, error), deliver func(query string, result T, err error)) *Debouncer[T] {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer[T]{quiet: quiet, fetch: fetch, deliver: deliver}
}

// Query schedules a fetch for q after the quiet period. An empty query skips
// the fetch and delivers a zero result immediately, clearing stale results.
func (d *Debouncer[T]) Query(ctx context.Context, q string) {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}

	if q == "" {
		d.timer = nil
		d.mu.Unlock()
		var zero T
		d.deliver(q, zero, nil)
		return
	}

	d.timer = time.AfterFunc(d.quiet, func() {
		if !d.current(seq) {
			return
		}
		result, err := d.fetch(ctx, q)
		if !d.current(seq) {
			return // superseded while in flight; drop the result
		}
		d.deliver(q, result, err)
	})
	d.mu.Unlock()
}

// Stop discards any pending fetch.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) current(seq int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq == d.seq
}
