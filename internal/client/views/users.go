package views

import (
	"context"
	"sync"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/collections"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/detail"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/notify"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/query"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/services"
)

// CollectionUsers is the synchronizer key of the user list.
const CollectionUsers = "users"

// UsersState is a consistent snapshot of the users screen.
type UsersState struct {
	Query  query.State
	List   collections.State
	Detail detail.State
}

// Users is the paginated, searchable user list.
type Users struct {
	svc  services.UserService
	deps Deps

	query  *query.Controller
	sync   *collections.Synchronizer
	detail *detail.Coordinator

	// issueMu pairs each query snapshot with the fetch issued for it.
	issueMu sync.Mutex
	lastSeq uint64 // touched only by onCollection, which is serialized
}

func NewUsers(svc services.UserService, pageSize int, d Deps) *Users {
	d = d.withDefaults()
	u := &Users{svc: svc, deps: d, query: query.New(pageSize)}
	u.sync = collections.New(
		collections.WithClock(d.Clock),
		collections.WithLogger(d.Log.With("view", "users")),
		collections.WithNotifier(d.Notifier),
		collections.OnChange(u.onCollection),
	)
	u.detail = detail.New(u.loadDetail,
		detail.WithLogger(d.Log.With("view", "users")),
		detail.WithNotifier(d.Notifier),
	)
	return u
}

// Query exposes the controller so front-ends can observe query changes.
func (u *Users) Query() *query.Controller { return u.query }

// Mount performs the initial fetch.
func (u *Users) Mount(ctx context.Context) <-chan struct{} {
	return u.refresh(ctx, u.query.Snapshot())
}

// Search sets the search term, returns to page 1 and refetches.
func (u *Users) Search(ctx context.Context, term string) <-chan struct{} {
	return u.refresh(ctx, u.query.SetSearch(term))
}

// Paginate moves to page with the given size and refetches. A size below 1
// keeps the current one.
func (u *Users) Paginate(ctx context.Context, page, pageSize int) <-chan struct{} {
	return u.refresh(ctx, u.query.SetPagination(page, pageSize))
}

// Refresh refetches the current page.
func (u *Users) Refresh(ctx context.Context) <-chan struct{} {
	return u.refresh(ctx, u.query.Snapshot())
}

func (u *Users) refresh(ctx context.Context, q query.State) <-chan struct{} {
	u.issueMu.Lock()
	defer u.issueMu.Unlock()

	u.sync.Register(CollectionUsers, func(ctx context.Context) (normalize.Page, error) {
		return u.svc.List(ctx, q.Page, q.PageSize, q.Search)
	})
	return u.sync.Refresh(ctx, CollectionUsers)
}

// onCollection copies the server total into the query state, but only from
// a newly applied successful fetch.
func (u *Users) onCollection(_ string, st collections.State) {
	if st.Seq <= u.lastSeq {
		return
	}
	u.lastSeq = st.Seq
	if st.Err == nil {
		u.query.SetTotal(st.Total)
	}
}

func (u *Users) State() UsersState {
	list, _ := u.sync.State(CollectionUsers)
	return UsersState{
		Query:  u.query.Snapshot(),
		List:   list,
		Detail: u.detail.State(),
	}
}

// Select opens the detail panel for id. The row from the list is shown
// right away; the full record is fetched in the background.
func (u *Users) Select(ctx context.Context, id string) <-chan struct{} {
	return u.detail.Select(ctx, u.find(id))
}

func (u *Users) CloseDetail() { u.detail.Close() }

func (u *Users) loadDetail(ctx context.Context, e models.Entity) (detail.Result, error) {
	full, err := u.svc.Get(ctx, e.ID)
	if err != nil {
		return detail.Result{}, err
	}
	return detail.Result{Entity: &full}, nil
}

// Update changes a user and refetches the list on success. On failure the
// list is left untouched and the error is notified.
func (u *Users) Update(ctx context.Context, id string, fields map[string]any) (<-chan struct{}, error) {
	if _, err := u.svc.Update(ctx, id, fields); err != nil {
		u.notify(ctx, notify.LevelError, "Failed to update user", err)
		return closed(), err
	}
	u.notify(ctx, notify.LevelSuccess, "User updated successfully", nil)
	return u.Refresh(ctx), nil
}

// Delete removes a user. Nothing is removed locally: on success the list is
// refetched, on failure it is left as it was and the error is notified.
func (u *Users) Delete(ctx context.Context, id string) (<-chan struct{}, error) {
	if err := u.svc.Delete(ctx, id); err != nil {
		u.notify(ctx, notify.LevelError, "Failed to delete user", err)
		return closed(), err
	}
	u.notify(ctx, notify.LevelSuccess, "User deleted successfully", nil)
	if st := u.detail.State(); st.Open && st.Entity.ID == id {
		u.detail.Close()
	}
	return u.Refresh(ctx), nil
}

// Wait blocks until every fetch started by the view has settled.
func (u *Users) Wait() {
	u.sync.Wait()
	u.detail.Wait()
}

func (u *Users) find(id string) models.Entity {
	st, _ := u.sync.State(CollectionUsers)
	for _, e := range st.Items {
		if e.ID == id {
			return e
		}
	}
	return models.Entity{ID: id, Attrs: map[string]any{}}
}

func (u *Users) notify(ctx context.Context, lvl notify.Level, msg string, err error) {
	u.deps.Notifier.Notify(ctx, notify.Notification{Level: lvl, Message: msg, Err: err})
}
