package collections

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/client"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/notify"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/clock"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

// Fetcher loads one page of a collection.
type Fetcher func(ctx context.Context) (normalize.Page, error)

// State is the UI-facing view of one collection.
type State struct {
	Items         []models.Entity
	Total         int
	Loading       bool
	Err           error
	Kind          client.Kind // KindShape when the envelope was not recognized
	LastFetchedAt time.Time
	Seq           uint64 // sequence number of the applied result, 0 before the first
}

// Listener observes applied state changes. Calls are serialized and arrive
// in application order. A listener must not call Refresh.
type Listener func(name string, s State)

type collection struct {
	fetch   Fetcher
	state   State
	issued  uint64
	applied uint64
}

// Synchronizer owns the State of every registered collection.
type Synchronizer struct {
	clk       clock.Clock
	log       logging.Logger
	notes     notify.Notifier
	listeners []Listener

	emitMu sync.Mutex
	mu     sync.Mutex
	cols   map[string]*collection
	wg     sync.WaitGroup
}

type Option func(*Synchronizer)

func WithClock(c clock.Clock) Option {
	return func(s *Synchronizer) { s.clk = c }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Synchronizer) { s.log = l }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *Synchronizer) { s.notes = n }
}

// OnChange adds a listener.
func OnChange(l Listener) Option {
	return func(s *Synchronizer) { s.listeners = append(s.listeners, l) }
}

func New(opts ...Option) *Synchronizer {
	s := &Synchronizer{cols: make(map[string]*collection)}
	for _, opt := range opts {
		opt(s)
	}
	if s.clk == nil {
		s.clk = clock.Real()
	}
	s.log = logging.OrNop(s.log)
	s.notes = notify.OrNop(s.notes)
	return s
}

// Register adds a named collection. Registering a name again replaces its
// fetcher and keeps its state.
func (s *Synchronizer) Register(name string, f Fetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cols[name]; ok {
		c.fetch = f
		return
	}
	s.cols[name] = &collection{fetch: f, state: State{Items: []models.Entity{}}}
}

// Names lists registered collections in sorted order.
func (s *Synchronizer) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.cols))
	for n := range s.cols {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Refresh issues one fetch per named collection, or per registered
// collection when names is empty. Loading is set before Refresh returns.
// The returned channel is closed once every fetch of this round settled.
func (s *Synchronizer) Refresh(ctx context.Context, names ...string) <-chan struct{} {
	if len(names) == 0 {
		names = s.Names()
	}

	type job struct {
		name  string
		seq   uint64
		fetch Fetcher
	}
	var jobs []job

	s.emitMu.Lock()
	for _, name := range names {
		s.mu.Lock()
		c, ok := s.cols[name]
		if !ok {
			s.mu.Unlock()
			s.log.Warn(ctx, "refresh of unknown collection", "collection", name)
			continue
		}
		c.issued++
		seq := c.issued
		c.state.Loading = true
		jobs = append(jobs, job{name: name, seq: seq, fetch: c.fetch})
		st := c.state.clone()
		s.mu.Unlock()

		s.log.Debug(ctx, "refresh issued", "collection", name, "seq", seq)
		s.emit(name, st)
	}
	s.emitMu.Unlock()

	done := make(chan struct{})
	var g errgroup.Group
	for _, j := range jobs {
		j := j
		s.wg.Add(1)
		g.Go(func() error {
			defer s.wg.Done()
			page, err := j.fetch(ctx)
			s.settle(ctx, j.name, j.seq, page, err)
			return err
		})
	}
	go func() {
		if err := g.Wait(); err != nil {
			s.log.Debug(ctx, "refresh round had failures", "error", err)
		}
		close(done)
	}()
	return done
}

// Wait blocks until every issued fetch has settled.
func (s *Synchronizer) Wait() { s.wg.Wait() }

// State returns a copy of the named collection's state.
func (s *Synchronizer) State(name string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cols[name]
	if !ok {
		return State{}, false
	}
	return c.state.clone(), true
}

func (s *Synchronizer) settle(ctx context.Context, name string, seq uint64, page normalize.Page, err error) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	c := s.cols[name]
	if applied := c.applied; seq <= applied {
		s.mu.Unlock()
		s.log.Debug(ctx, "stale response discarded", "collection", name, "seq", seq, "applied", applied)
		return
	}
	c.applied = seq

	st := &c.state
	st.Seq = seq
	st.Loading = c.applied < c.issued
	st.LastFetchedAt = s.clk.Now()
	if err != nil {
		st.Items = []models.Entity{}
		st.Total = 0
		st.Err = err
		st.Kind = client.KindOf(err)
	} else {
		st.Items = page.Items
		if st.Items == nil {
			st.Items = []models.Entity{}
		}
		st.Total = page.Total
		st.Err = nil
		st.Kind = client.KindNone
		if !page.Matched() {
			st.Kind = client.KindShape
		}
	}
	snapshot := st.clone()
	s.mu.Unlock()

	switch {
	case err != nil:
		s.log.Error(ctx, "refresh failed", "collection", name, "seq", seq, "error", err)
		s.notes.Notify(ctx, notify.Notification{
			Level:   notify.LevelError,
			Message: fmt.Sprintf("Failed to load %s", name),
			Err:     err,
		})
	case snapshot.Kind == client.KindShape:
		s.log.Warn(ctx, "unrecognized response shape", "collection", name, "seq", seq)
	default:
		s.log.Debug(ctx, "refresh applied", "collection", name, "seq", seq, "items", len(snapshot.Items))
	}
	s.emit(name, snapshot)
}

// emit must be called with emitMu held.
func (s *Synchronizer) emit(name string, st State) {
	for _, l := range s.listeners {
		l(name, st)
	}
}

func (st State) clone() State {
	out := st
	out.Items = append([]models.Entity(nil), st.Items...)
	if out.Items == nil {
		out.Items = []models.Entity{}
	}
	return out
}
