package notify

import (
	"sync"
	"testing"
)

type recording struct {
	mu     sync.Mutex
	errors []string
}

func (r *recording) Info(string)    {}
func (r *recording) Success(string) {}
func (r *recording) Error(msg string) {
	r.mu.Lock()
	r.errors = append(r.errors, msg)
	r.mu.Unlock()
}

func (r *recording) errorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

func TestErrorOnceSuppressesRepeats(t *testing.T) {
	next := &recording{}
	d := NewDeduper(next)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.ErrorOnce("expired", "session expired")
		}()
	}
	wg.Wait()

	if got := next.errorCount(); got != 1 {
		t.Fatalf("expected one notice, got %d", got)
	}
}

func TestResetReArmsKey(t *testing.T) {
	next := &recording{}
	d := NewDeduper(next)

	d.ErrorOnce("expired", "session expired")
	d.ErrorOnce("expired", "session expired")
	d.Reset("expired")
	d.ErrorOnce("expired", "session expired")

	if got := next.errorCount(); got != 2 {
		t.Fatalf("reset must re-arm the key, got %d notices", got)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	next := &recording{}
	d := NewDeduper(next)

	d.ErrorOnce("a", "first")
	d.ErrorOnce("b", "second")

	if got := next.errorCount(); got != 2 {
		t.Fatalf("distinct keys must both fire, got %d", got)
	}
}
