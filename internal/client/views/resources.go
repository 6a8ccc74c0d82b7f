package views

import (
	"context"
	"slices"
	"sync"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/collections"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/countdown"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/detail"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/services"
)

// Resource collections, fetched together in one refresh round.
const (
	CollectionActive  = "active"
	CollectionPrivate = "private"
)

// ResourcesState is a snapshot of the resources screen.
type ResourcesState struct {
	Active  collections.State
	Private collections.State
	Detail  detail.State
}

// Resources shows active and private resources. Every entity with an
// expiry gets a countdown that lives as long as the entity stays in its
// collection and the view stays mounted.
type Resources struct {
	svc  services.ResourceService
	deps Deps

	sync   *collections.Synchronizer
	detail *detail.Coordinator

	mu           sync.Mutex
	boards       map[string]*countdown.Board
	selected     *countdown.Countdown
	selectedFrom string // collection the detail entity was found in
	mounted      bool
	lastSeq   map[string]uint64
	onTickFns []countdown.ChangeFunc
}

type ResourcesOption func(*Resources)

// OnTick observes every countdown tick of the view, detail included.
func OnTick(fn countdown.ChangeFunc) ResourcesOption {
	return func(r *Resources) { r.onTickFns = append(r.onTickFns, fn) }
}

func NewResources(svc services.ResourceService, d Deps, opts ...ResourcesOption) *Resources {
	d = d.withDefaults()
	r := &Resources{
		svc:     svc,
		deps:    d,
		boards:  make(map[string]*countdown.Board),
		lastSeq: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(r)
	}

	log := d.Log.With("view", "resources")
	r.sync = collections.New(
		collections.WithClock(d.Clock),
		collections.WithLogger(log),
		collections.WithNotifier(d.Notifier),
		collections.OnChange(r.onCollection),
	)
	r.sync.Register(CollectionActive, svc.Active)
	r.sync.Register(CollectionPrivate, svc.Private)
	r.detail = detail.New(r.loadParticipants,
		detail.WithLogger(log),
		detail.WithNotifier(d.Notifier),
	)
	return r
}

// Mount creates the countdown boards and fetches both collections in
// parallel.
func (r *Resources) Mount(ctx context.Context) <-chan struct{} {
	r.mu.Lock()
	if !r.mounted {
		for _, name := range []string{CollectionActive, CollectionPrivate} {
			b := countdown.NewBoard(r.deps.Clock, r.deps.TickInterval, r.tick)
			if st, ok := r.sync.State(name); ok {
				b.Sync(st.Items)
			}
			r.boards[name] = b
		}
		r.mounted = true
	}
	r.mu.Unlock()

	return r.Refresh(ctx)
}

// Refresh refetches both collections.
func (r *Resources) Refresh(ctx context.Context) <-chan struct{} {
	return r.sync.Refresh(ctx, CollectionActive, CollectionPrivate)
}

// Unmount stops every countdown and closes the detail panel. Fetches still
// in flight settle into the synchronizer but start no timers.
func (r *Resources) Unmount() {
	r.mu.Lock()
	for name, b := range r.boards {
		b.Close()
		delete(r.boards, name)
	}
	if r.selected != nil {
		r.selected.Stop()
		r.selected = nil
	}
	r.mounted = false
	r.mu.Unlock()

	r.detail.Close()
}

func (r *Resources) onCollection(name string, st collections.State) {
	if st.Seq <= r.lastSeq[name] {
		return
	}
	r.lastSeq[name] = st.Seq

	r.mu.Lock()
	b := r.boards[name]
	if r.selected != nil && r.selectedFrom == name && !slices.Contains(models.IDs(st.Items), r.selected.ID()) {
		r.selected.Stop()
		r.selected = nil
	}
	r.mu.Unlock()
	if b != nil {
		b.Sync(st.Items)
	}
}

func (r *Resources) tick(id string, rem countdown.Remaining) {
	for _, fn := range r.onTickFns {
		fn(id, rem)
	}
}

func (r *Resources) State() ResourcesState {
	active, _ := r.sync.State(CollectionActive)
	private, _ := r.sync.State(CollectionPrivate)
	return ResourcesState{Active: active, Private: private, Detail: r.detail.State()}
}

// Countdown returns the remaining time of entity id in collection name.
func (r *Resources) Countdown(name, id string) (countdown.Remaining, bool) {
	r.mu.Lock()
	b := r.boards[name]
	r.mu.Unlock()
	if b == nil {
		return countdown.Remaining{}, false
	}
	return b.Get(id)
}

// CountdownIDs lists the entities of collection name that have a countdown.
func (r *Resources) CountdownIDs(name string) []string {
	r.mu.Lock()
	b := r.boards[name]
	r.mu.Unlock()
	if b == nil {
		return nil
	}
	return b.IDs()
}

// TrackedTimers counts countdowns held by the boards, expired ones included.
func (r *Resources) TrackedTimers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.boards {
		n += b.Len()
	}
	return n
}

// ActiveTimers counts countdowns that still have a pending tick.
func (r *Resources) ActiveTimers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.boards {
		n += b.Active()
	}
	if r.selected != nil && !r.selected.Done() {
		n++
	}
	return n
}

// Select opens the detail panel on entity id of collection name and loads
// its participants. An entity with an expiry gets its own countdown.
func (r *Resources) Select(ctx context.Context, name, id string) <-chan struct{} {
	e, from := r.find(name, id)

	r.mu.Lock()
	if r.selected != nil {
		r.selected.Stop()
		r.selected = nil
	}
	if from == "" {
		from = name
	}
	r.selectedFrom = from
	if e.HasExpiry() && r.mounted {
		r.selected = countdown.Start(r.deps.Clock, e.ID, e.ExpiresAt, r.deps.TickInterval, r.tick)
	}
	r.mu.Unlock()

	return r.detail.Select(ctx, e)
}

// DetailCountdown is the remaining time of the selected entity.
func (r *Resources) DetailCountdown() (countdown.Remaining, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected == nil {
		return countdown.Remaining{}, false
	}
	return r.selected.Remaining(), true
}

func (r *Resources) CloseDetail() {
	r.mu.Lock()
	if r.selected != nil {
		r.selected.Stop()
		r.selected = nil
	}
	r.mu.Unlock()
	r.detail.Close()
}

// loadParticipants fetches the full record from the endpoint of the
// collection it was selected in, then its participants.
func (r *Resources) loadParticipants(ctx context.Context, e models.Entity) (detail.Result, error) {
	r.mu.Lock()
	from := r.selectedFrom
	r.mu.Unlock()

	get := r.svc.Get
	if from == CollectionPrivate {
		get = r.svc.GetPrivate
	}
	full, err := get(ctx, e.ID)
	if err != nil {
		return detail.Result{}, err
	}
	p, err := r.svc.Participants(ctx, e.ID)
	if err != nil {
		return detail.Result{}, err
	}
	return detail.Result{Entity: &full, Related: p.Items}, nil
}

// Wait blocks until every fetch started by the view has settled.
func (r *Resources) Wait() {
	r.sync.Wait()
	r.detail.Wait()
}

// find looks id up in collection name, then in the other collection, and
// reports where it was found.
func (r *Resources) find(name, id string) (models.Entity, string) {
	names := []string{name, CollectionActive, CollectionPrivate}
	for _, n := range names {
		st, ok := r.sync.State(n)
		if !ok {
			continue
		}
		for _, e := range st.Items {
			if e.ID == id {
				return e, n
			}
		}
	}
	return models.Entity{ID: id, Attrs: map[string]any{}}, ""
}
