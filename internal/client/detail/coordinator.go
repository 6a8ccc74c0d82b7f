// Package detail manages the secondary view opened for one selected entity.
//
// Selecting an entity shows it immediately and loads richer data in the
// background. Every Select or Close starts a new detail session; a load
// that settles after its session ended is dropped.
package detail

import (
	"context"
	"fmt"
	"sync"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/client"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/notify"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

// Result is what a Loader fetched. A nil Entity keeps the provisional one.
type Result struct {
	Entity  *models.Entity
	Related []models.Entity
}

// Loader fetches detail data for the selected entity.
type Loader func(ctx context.Context, e models.Entity) (Result, error)

// State of the detail view. The zero value is a closed view.
type State struct {
	Open    bool
	Entity  models.Entity
	Related []models.Entity
	Loading bool
	Err     error
	Kind    client.Kind
}

type Option func(*Coordinator)

func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *Coordinator) { c.notes = n }
}

// OnChange registers fn to observe every state change. Calls are
// serialized; fn must not call Select or Close.
func OnChange(fn func(State)) Option {
	return func(c *Coordinator) { c.listeners = append(c.listeners, fn) }
}

// Coordinator exclusively owns the detail State.
type Coordinator struct {
	load      Loader
	log       logging.Logger
	notes     notify.Notifier
	listeners []func(State)

	emitMu  sync.Mutex
	mu      sync.Mutex
	state   State
	session uint64
	wg      sync.WaitGroup
}

func New(load Loader, opts ...Option) *Coordinator {
	c := &Coordinator{load: load}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logging.OrNop(c.log)
	c.notes = notify.OrNop(c.notes)
	return c
}

// Select opens the view on e and loads its detail. The returned channel is
// closed when the load settled, whether or not it was applied.
func (c *Coordinator) Select(ctx context.Context, e models.Entity) <-chan struct{} {
	c.emitMu.Lock()
	c.mu.Lock()
	c.session++
	session := c.session
	c.state = State{Open: true, Entity: e, Related: []models.Entity{}, Loading: true}
	st := c.state.clone()
	c.mu.Unlock()
	c.emit(st)
	c.emitMu.Unlock()

	done := make(chan struct{})
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)
		res, err := c.load(ctx, e)
		c.settle(ctx, session, res, err)
	}()
	return done
}

// Close discards all detail state. A later Select fetches again.
func (c *Coordinator) Close() {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	c.session++
	c.state = State{}
	c.mu.Unlock()
	c.emit(State{})
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Wait blocks until every started load has settled.
func (c *Coordinator) Wait() { c.wg.Wait() }

func (c *Coordinator) settle(ctx context.Context, session uint64, res Result, err error) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	if session != c.session {
		c.mu.Unlock()
		c.log.Debug(ctx, "detail load discarded", "session", session)
		return
	}
	st := &c.state
	st.Loading = false
	if err != nil {
		st.Err = err
		st.Kind = client.KindOf(err)
	} else {
		if res.Entity != nil {
			st.Entity = *res.Entity
		}
		st.Related = res.Related
		if st.Related == nil {
			st.Related = []models.Entity{}
		}
	}
	snapshot := st.clone()
	c.mu.Unlock()

	if err != nil {
		c.log.Error(ctx, "detail load failed", "id", snapshot.Entity.ID, "error", err)
		c.notes.Notify(ctx, notify.Notification{
			Level:   notify.LevelError,
			Message: fmt.Sprintf("Failed to load details for %s", snapshot.Entity.ID),
			Err:     err,
		})
	}
	c.emit(snapshot)
}

func (c *Coordinator) emit(st State) {
	for _, fn := range c.listeners {
		fn(st)
	}
}

func (s State) clone() State {
	out := s
	if s.Related != nil {
		out.Related = append([]models.Entity{}, s.Related...)
	}
	return out
}
