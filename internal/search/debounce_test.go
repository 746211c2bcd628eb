package search

import (
	"context"
	"sync"
	"testing"
	"time"
)

type capture struct {
	mu      sync.Mutex
	queries []string
	results []string
}

func (c *capture) fetch(_ context.Context, query string) (string, error) {
	c.mu.Lock()
	c.queries = append(c.queries, query)
	c.mu.Unlock()
	return "result:" + query, nil
}

func (c *capture) deliver(_ string, result string, _ error) {
	c.mu.Lock()
	c.results = append(c.results, result)
	c.mu.Unlock()
}

func (c *capture) snapshot() ([]string, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...), append([]string(nil), c.results...)
}

func TestRapidQueriesOnlyLastFires(t *testing.T) {
	c := &capture{}
	deb := NewDebouncer(30*time.Millisecond, c.fetch, c.deliver)
	defer deb.Stop()

	deb.Query(context.Background(), "m")
	deb.Query(context.Background(), "ma")
	deb.Query(context.Background(), "matrix")

	time.Sleep(150 * time.Millisecond)

	queries, results := c.snapshot()
	if len(queries) != 1 || queries[0] != "matrix" {
		t.Fatalf("expected only the final query to fetch, got %v", queries)
	}
	if len(results) != 1 || results[0] != "result:matrix" {
		t.Fatalf("expected one delivery, got %v", results)
	}
}

func TestSupersededInFlightResultDropped(t *testing.T) {
	block := make(chan struct{})
	c := &capture{}
	deb := NewDebouncer(10*time.Millisecond,
		func(ctx context.Context, query string) (string, error) {
			if query == "slow" {
				<-block
			}
			return c.fetch(ctx, query)
		},
		c.deliver)
	defer deb.Stop()

	deb.Query(context.Background(), "slow")
	time.Sleep(50 * time.Millisecond) // slow fetch is now in flight

	deb.Query(context.Background(), "fast")
	time.Sleep(50 * time.Millisecond)
	close(block) // slow fetch completes after being superseded
	time.Sleep(50 * time.Millisecond)

	_, results := c.snapshot()
	if len(results) != 1 || results[0] != "result:fast" {
		t.Fatalf("superseded result must be dropped, got %v", results)
	}
}

func TestEmptyQueryClearsImmediately(t *testing.T) {
	c := &capture{}
	deb := NewDebouncer(30*time.Millisecond, c.fetch, c.deliver)
	defer deb.Stop()

	deb.Query(context.Background(), "matrix")
	deb.Query(context.Background(), "")

	time.Sleep(100 * time.Millisecond)

	queries, results := c.snapshot()
	if len(queries) != 0 {
		t.Fatalf("empty query must cancel the pending fetch, got %v", queries)
	}
	if len(results) != 1 || results[0] != "" {
		t.Fatalf("expected a single zero-value delivery, got %v", results)
	}
}

func TestStopCancelsPending(t *testing.T) {
	c := &capture{}
	deb := NewDebouncer(30*time.Millisecond, c.fetch, c.deliver)

	deb.Query(context.Background(), "matrix")
	deb.Stop()
	time.Sleep(100 * time.Millisecond)

	queries, _ := c.snapshot()
	if len(queries) != 0 {
		t.Fatalf("stopped debouncer must not fetch, got %v", queries)
	}
}
