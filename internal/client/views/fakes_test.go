package views

import (
	"context"
	"sync"
	"time"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/services"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func page(total int, es ...models.Entity) normalize.Page {
	if total < 0 {
		total = len(es)
	}
	return normalize.Page{Items: es, Total: total, Via: normalize.ViaField}
}

func ent(id string) models.Entity {
	return models.Entity{ID: id, Attrs: map[string]any{"_id": id}}
}

func expiring(id string, at time.Time) models.Entity {
	e := ent(id)
	e.ExpiresAt = at
	return e
}

type listCall struct {
	Page, Limit int
	Search      string
}

// fakeUsers embeds the interface; unimplemented methods panic.
type fakeUsers struct {
	services.UserService

	mu       sync.Mutex
	calls    []listCall
	list     func(call listCall) (normalize.Page, error)
	get      func(id string) (models.Entity, error)
	update   func(id string, fields map[string]any) (models.Entity, error)
	deleteFn func(id string) error
}

func (f *fakeUsers) List(_ context.Context, p, limit int, search string) (normalize.Page, error) {
	c := listCall{Page: p, Limit: limit, Search: search}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
	return f.list(c)
}

func (f *fakeUsers) listCalls() []listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]listCall(nil), f.calls...)
}

func (f *fakeUsers) Get(_ context.Context, id string) (models.Entity, error) { return f.get(id) }

func (f *fakeUsers) Update(_ context.Context, id string, fields map[string]any) (models.Entity, error) {
	return f.update(id, fields)
}

func (f *fakeUsers) Delete(_ context.Context, id string) error { return f.deleteFn(id) }

type fakeResources struct {
	services.ResourceService

	mu           sync.Mutex
	active       func() (normalize.Page, error)
	private      func() (normalize.Page, error)
	participants func(id string) (normalize.Page, error)
	get          func(id string) (models.Entity, error)
	getPrivate   func(id string) (models.Entity, error)
}

func (f *fakeResources) Active(context.Context) (normalize.Page, error) {
	f.mu.Lock()
	fn := f.active
	f.mu.Unlock()
	return fn()
}

func (f *fakeResources) Private(context.Context) (normalize.Page, error) {
	f.mu.Lock()
	fn := f.private
	f.mu.Unlock()
	return fn()
}

func (f *fakeResources) Get(_ context.Context, id string) (models.Entity, error) {
	return f.get(id)
}

func (f *fakeResources) GetPrivate(_ context.Context, id string) (models.Entity, error) {
	return f.getPrivate(id)
}

func (f *fakeResources) Participants(_ context.Context, id string) (normalize.Page, error) {
	return f.participants(id)
}

func (f *fakeResources) setPrivate(fn func() (normalize.Page, error)) {
	f.mu.Lock()
	f.private = fn
	f.mu.Unlock()
}
