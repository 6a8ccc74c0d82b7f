// Package clock abstracts wall-clock time and one-shot timers so that
// countdowns and fetch timestamps can be driven deterministically in tests.
//
// Production code receives Real(); tests receive Fake(start) and move time
// forward with Advance. Components never call time.Now or time.AfterFunc
// directly.
package clock

import "time"

// Clock is the time source shared by the synchronization engine.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time

	// AfterFunc calls f once after d elapses and returns a Timer that can
	// cancel or re-arm the call.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stop  func() bool
	reset func(time.Duration) bool
}

// Stop cancels the pending call. It reports whether the call was still
// pending.
func (t *Timer) Stop() bool { return t.stop() }

// Reset re-arms the timer to fire after d. It reports whether the timer was
// pending before the reset.
func (t *Timer) Reset(d time.Duration) bool { return t.reset(d) }

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	t := time.AfterFunc(d, f)
	return &Timer{stop: t.Stop, reset: t.Reset}
}
