package clock

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a manually advanced Clock. Time stands still until Advance
// is called; AfterFunc callbacks whose deadline is reached run synchronously
// inside Advance, in deadline order.
//
// Callbacks may Stop or Reset timers but must not call Advance.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*fakeTimer
}

type fakeTimer struct {
	deadline time.Time
	fn       func()
	active   bool
}

// Fake returns a FakeClock set to start.
func Fake(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers f to run once the clock has advanced by d. A
// non-positive d runs f before AfterFunc returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	ft := &fakeTimer{fn: f}

	c.mu.Lock()
	if d <= 0 {
		c.mu.Unlock()
		f()
	} else {
		ft.deadline = c.now.Add(d)
		ft.active = true
		c.pending = append(c.pending, ft)
		c.mu.Unlock()
	}

	return &Timer{
		stop: func() bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			was := ft.active
			c.removeLocked(ft)
			return was
		},
		reset: func(d time.Duration) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			was := ft.active
			c.removeLocked(ft)
			ft.deadline = c.now.Add(d)
			ft.active = true
			c.pending = append(c.pending, ft)
			return was
		},
	}
}

// Advance moves the clock forward by d and fires every timer whose deadline
// is not after the new time. While a callback runs, Now reports that
// timer's deadline, so a timer re-armed from its callback fires again within
// the same Advance when the new deadline is also reached.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		due := c.popDue(target)
		if due == nil {
			break
		}
		due.fn()
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

// PendingCount returns the number of armed timers.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// popDue removes and returns the earliest timer due at or before target.
func (c *FakeClock) popDue(target time.Time) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.pending, func(i, j int) bool {
		return c.pending[i].deadline.Before(c.pending[j].deadline)
	})
	if len(c.pending) == 0 || c.pending[0].deadline.After(target) {
		return nil
	}
	ft := c.pending[0]
	c.pending = c.pending[1:]
	ft.active = false
	if ft.deadline.After(c.now) {
		c.now = ft.deadline
	}
	return ft
}

func (c *FakeClock) removeLocked(ft *fakeTimer) {
	for i, p := range c.pending {
		if p == ft {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			break
		}
	}
	ft.active = false
}
