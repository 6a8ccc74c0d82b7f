package countdown

import (
	"sort"
	"sync"
	"time"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/clock"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
)

// Board keeps one Countdown per entity id for a rendered collection.
type Board struct {
	clk      clock.Clock
	interval time.Duration
	onChange ChangeFunc

	mu      sync.Mutex
	entries map[string]*Countdown
	closed  bool
}

func NewBoard(clk clock.Clock, interval time.Duration, onChange ChangeFunc) *Board {
	return &Board{
		clk:      clk,
		interval: interval,
		onChange: onChange,
		entries:  make(map[string]*Countdown),
	}
}

// Sync reconciles the board with the current collection snapshot.
// Countdowns for entities that disappeared, or whose expiry changed, are
// stopped; new entities with an expiry get a fresh countdown. A closed board
// ignores Sync.
func (b *Board) Sync(entities []models.Entity) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	want := make(map[string]time.Time, len(entities))
	for _, e := range entities {
		if e.HasExpiry() && e.ID != "" {
			want[e.ID] = e.ExpiresAt
		}
	}

	for id, c := range b.entries {
		exp, ok := want[id]
		if !ok || !exp.Equal(c.ExpiresAt()) {
			c.Stop()
			delete(b.entries, id)
		}
	}
	for id, exp := range want {
		if _, ok := b.entries[id]; !ok {
			b.entries[id] = Start(b.clk, id, exp, b.interval, b.onChange)
		}
	}
}

// Get returns the current remaining time for id.
func (b *Board) Get(id string) (Remaining, bool) {
	b.mu.Lock()
	c, ok := b.entries[id]
	b.mu.Unlock()
	if !ok {
		return Remaining{}, false
	}
	return c.Remaining(), true
}

// IDs lists tracked ids in sorted order.
func (b *Board) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]string, 0, len(b.entries))
	for id := range b.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len is the number of tracked countdowns, expired ones included.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Active is the number of countdowns that still have a pending tick.
func (b *Board) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.entries {
		if !c.Done() {
			n++
		}
	}
	return n
}

// Close stops every countdown. The board cannot be reused.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, c := range b.entries {
		c.Stop()
		delete(b.entries, id)
	}
	b.closed = true
}
