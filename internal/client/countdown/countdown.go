package countdown

import (
	"sync"
	"time"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/clock"
)

// DefaultInterval is the tick period.
const DefaultInterval = time.Second

// ChangeFunc is called after every tick with the recomputed value. It runs
// on the clock's goroutine and must not call back into the Countdown.
type ChangeFunc func(id string, r Remaining)

// Countdown tracks one entity's expiry.
type Countdown struct {
	clk       clock.Clock
	id        string
	expiresAt time.Time
	interval  time.Duration
	onChange  ChangeFunc

	mu        sync.Mutex
	remaining Remaining
	timer     *clock.Timer
	stopped   bool
}

// Start evaluates the countdown immediately and, unless it is already
// expired, schedules a tick every interval. onChange may be nil.
func Start(clk clock.Clock, id string, expiresAt time.Time, interval time.Duration, onChange ChangeFunc) *Countdown {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Countdown{
		clk:       clk,
		id:        id,
		expiresAt: expiresAt,
		interval:  interval,
		onChange:  onChange,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining = Compute(expiresAt, clk.Now())
	if !c.remaining.Expired {
		c.timer = clk.AfterFunc(interval, c.tick)
	}
	return c
}

func (c *Countdown) tick() {
	c.mu.Lock()
	if c.stopped || c.timer == nil {
		c.mu.Unlock()
		return
	}
	r := Compute(c.expiresAt, c.clk.Now())
	c.remaining = r
	if r.Expired {
		c.timer = nil
	} else {
		c.timer.Reset(c.interval)
	}
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(c.id, r)
	}
}

func (c *Countdown) ID() string { return c.id }

func (c *Countdown) ExpiresAt() time.Time { return c.expiresAt }

// Remaining returns the value computed at the last tick.
func (c *Countdown) Remaining() Remaining {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Done reports whether no further tick will run.
func (c *Countdown) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped || c.timer == nil
}

// Stop releases the pending tick. It is safe to call more than once.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
