// Package notify carries transient, user-visible messages from the
// synchronization layer to whatever renders them.
package notify

import (
	"context"
	"sync"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a single toast-style message.
type Notification struct {
	Level   Level
	Message string
	Err     error
}

// Notifier receives notifications. Implementations must be safe for
// concurrent use; fetches settle on their own goroutines.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Nop discards everything.
func Nop() Notifier { return Func(func(context.Context, Notification) {}) }

// OrNop returns n, or Nop if n is nil.
func OrNop(n Notifier) Notifier {
	if n == nil {
		return Nop()
	}
	return n
}

// Log writes notifications to a logger.
type Log struct {
	log logging.Logger
}

func NewLog(l logging.Logger) *Log {
	return &Log{log: logging.OrNop(l)}
}

func (n *Log) Notify(ctx context.Context, note Notification) {
	args := []any{"notice", note.Level.String()}
	if note.Err != nil {
		args = append(args, "error", note.Err)
	}
	if note.Level == LevelError {
		n.log.Error(ctx, note.Message, args...)
		return
	}
	n.log.Info(ctx, note.Message, args...)
}

// Recorder keeps every notification in memory. The CLI drains new ones
// between commands and lists the whole history on request.
type Recorder struct {
	mu    sync.Mutex
	notes []Notification
	read  int
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

// All returns a copy of every recorded notification, drained ones included.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notes...)
}

// Drain returns the notifications recorded since the previous Drain.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]Notification(nil), r.notes[r.read:]...)
	r.read = len(r.notes)
	return out
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, t := range m {
		if t != nil {
			t.Notify(ctx, n)
		}
	}
}
