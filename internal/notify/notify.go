package notify

import (
	"log/slog"
	"sync"
)

// Notifier surfaces user-visible feedback. Implementations must be safe for
// concurrent use; remote-call failures report through here rather than panicking.
type Notifier interface {
	Info(msg string)
	Success(msg string)
	Error(msg string)
}

// Logger adapts a slog.Logger into a Notifier for terminal output.
type Logger struct {
	log *slog.Logger
}

func NewLogger(log *slog.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Info(msg string)    { l.log.Info(msg) }
func (l *Logger) Success(msg string) { l.log.Info(msg, "status", "ok") }
func (l *Logger) Error(msg string)   { l.log.Error(msg) }

// Deduper suppresses repeats of keyed notices until Reset is called for the key.
// Used so concurrent credential rejections produce a single session-expired notice.
type Deduper struct {
	next Notifier

	mu   sync.Mutex
	seen map[string]struct{}
}

func NewDeduper(next Notifier) *Deduper {
	return &Deduper{next: next, seen: make(map[string]struct{})}
}

// ErrorOnce forwards the message unless key has already fired.
func (d *Deduper) ErrorOnce(key, msg string) {
	d.mu.Lock()
	_, dup := d.seen[key]
	if !dup {
		d.seen[key] = struct{}{}
	}
	d.mu.Unlock()
	if !dup {
		d.next.Error(msg)
	}
}

// Reset re-arms a key, typically after a fresh login.
func (d *Deduper) Reset(key string) {
	d.mu.Lock()
	delete(d.seen, key)
	d.mu.Unlock()
}
