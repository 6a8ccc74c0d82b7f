package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/auth"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/config"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/notify"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/services"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/clock"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ent(id string, kv ...any) models.Entity {
	attrs := map[string]any{"_id": id}
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[kv[i].(string)] = kv[i+1]
	}
	return models.Entity{ID: id, Attrs: attrs}
}

func expiring(id string, at time.Time) models.Entity {
	e := ent(id, "name", "room "+id, "expiresAt", at.Format(time.RFC3339))
	e.ExpiresAt = at
	return e
}

func page(es ...models.Entity) normalize.Page {
	return normalize.Page{Items: es, Total: len(es), Via: normalize.ViaField}
}

// fakeAuth embeds the interface; unimplemented methods panic.
type fakeAuth struct {
	services.AuthService

	user       models.Entity
	loginErr   error
	currentErr error
	logoutErr  error
	expires    time.Time
	loggedIn   bool

	email, password string
	logouts         int
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (models.Entity, error) {
	f.email, f.password = email, password
	if f.loginErr != nil {
		return models.Entity{}, f.loginErr
	}
	f.loggedIn = true
	return f.user, nil
}

func (f *fakeAuth) CurrentUser(context.Context) (models.Entity, error) {
	return f.user, f.currentErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	f.loggedIn = false
	return f.logoutErr
}

func (f *fakeAuth) LoggedIn() bool { return f.loggedIn }

func (f *fakeAuth) ExpiresAt() (time.Time, error) {
	if f.expires.IsZero() {
		return time.Time{}, auth.ErrNoExpiry
	}
	return f.expires, nil
}

func (f *fakeAuth) Close() error { return nil }

type fakeUsers struct {
	services.UserService

	mu      sync.Mutex
	list    func(page, limit int, search string) (normalize.Page, error)
	get     func(id string) (models.Entity, error)
	del     func(id string) error
	update  func(id string, fields map[string]any) (models.Entity, error)
	stats   func() (map[string]any, error)
	daily   normalize.Page
	growth  normalize.Page
	listed  int
	deleted []string
	updated map[string]any
}

func (f *fakeUsers) List(_ context.Context, p, limit int, search string) (normalize.Page, error) {
	f.mu.Lock()
	f.listed++
	f.mu.Unlock()
	return f.list(p, limit, search)
}

func (f *fakeUsers) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listed
}

func (f *fakeUsers) Get(_ context.Context, id string) (models.Entity, error) { return f.get(id) }

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.del(id)
}

func (f *fakeUsers) Update(_ context.Context, id string, fields map[string]any) (models.Entity, error) {
	f.updated = fields
	return f.update(id, fields)
}

func (f *fakeUsers) Stats(context.Context) (map[string]any, error) { return f.stats() }

func (f *fakeUsers) Growth(context.Context, int) (normalize.Page, error) { return f.growth, nil }

func (f *fakeUsers) DailyActive(context.Context, int) (normalize.Page, error) { return f.daily, nil }

type fakeResources struct {
	services.ResourceService

	active       func() (normalize.Page, error)
	private      func() (normalize.Page, error)
	participants func(id string) (normalize.Page, error)
	get          func(id string) (models.Entity, error)
	getPrivate   func(id string) (models.Entity, error)
	stats        func() (map[string]any, error)
}

func (f *fakeResources) Active(context.Context) (normalize.Page, error)  { return f.active() }
func (f *fakeResources) Private(context.Context) (normalize.Page, error) { return f.private() }
func (f *fakeResources) Participants(_ context.Context, id string) (normalize.Page, error) {
	return f.participants(id)
}
func (f *fakeResources) Get(_ context.Context, id string) (models.Entity, error) { return f.get(id) }
func (f *fakeResources) GetPrivate(_ context.Context, id string) (models.Entity, error) {
	return f.getPrivate(id)
}
func (f *fakeResources) Stats(context.Context) (map[string]any, error) { return f.stats() }

type fakeReports struct {
	services.ReportService

	filters map[string]string
	list    normalize.Page
	stats   func() (map[string]any, error)
	err     error
	updates map[string]map[string]any
	deleted []string
}

func (f *fakeReports) List(_ context.Context, filters map[string]string) (normalize.Page, error) {
	f.filters = filters
	return f.list, nil
}

func (f *fakeReports) Stats(context.Context) (map[string]any, error) { return f.stats() }

func (f *fakeReports) Update(_ context.Context, id string, fields map[string]any) (models.Entity, error) {
	if f.err != nil {
		return models.Entity{}, f.err
	}
	if f.updates == nil {
		f.updates = map[string]map[string]any{}
	}
	f.updates[id] = fields
	return ent(id, "status", fields["status"]), nil
}

func (f *fakeReports) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fixture struct {
	app     *App
	clk     *clock.FakeClock
	auth    *fakeAuth
	users   *fakeUsers
	res     *fakeResources
	reports *fakeReports
	out     *output
}

type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) text() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "")
}

func (o *output) reset() {
	o.mu.Lock()
	o.lines = nil
	o.mu.Unlock()
}

// captureOutput redirects printlnFn for the duration of the test.
func captureOutput(t *testing.T) *output {
	t.Helper()
	o := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		o.mu.Lock()
		defer o.mu.Unlock()
		s := fmt.Sprintln(a...)
		o.lines = append(o.lines, s)
		return len(s), nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return o
}

// newFixture builds an App over fake services. stdin feeds the
// confirmation prompts.
func newFixture(t *testing.T, stdin string) *fixture {
	t.Helper()
	f := &fixture{
		clk:  clock.Fake(t0),
		auth: &fakeAuth{user: ent("admin1", "name", "Root", "email", "root@example.com")},
		users: &fakeUsers{
			list: func(int, int, string) (normalize.Page, error) {
				return page(ent("u1", "name", "Asha", "email", "asha@example.com", "role", "admin")), nil
			},
			get: func(id string) (models.Entity, error) { return ent(id, "name", "Asha"), nil },
			del: func(string) error { return nil },
			update: func(id string, fields map[string]any) (models.Entity, error) {
				return ent(id, "name", "Asha"), nil
			},
			stats: func() (map[string]any, error) {
				return map[string]any{"totalUsers": float64(1200)}, nil
			},
		},
		res: &fakeResources{
			active:       func() (normalize.Page, error) { return page(), nil },
			private:      func() (normalize.Page, error) { return page(), nil },
			participants: func(string) (normalize.Page, error) { return page(), nil },
			get:          func(id string) (models.Entity, error) { return ent(id, "name", "room "+id), nil },
			getPrivate:   func(id string) (models.Entity, error) { return ent(id, "name", "private "+id), nil },
			stats:        func() (map[string]any, error) { return map[string]any{"active": float64(3)}, nil },
		},
		reports: &fakeReports{
			stats: func() (map[string]any, error) { return map[string]any{"pending": float64(2)}, nil },
		},
		out: captureOutput(t),
	}

	f.app = &App{
		config:          &config.Config{PageSize: 10, TickInterval: time.Second},
		clk:             f.clk,
		log:             logging.Nop(),
		reader:          bufio.NewReader(strings.NewReader(stdin)),
		notes:           &notify.Recorder{},
		Mode:            ModeAnonymous,
		authService:     f.auth,
		userService:     f.users,
		resourceService: f.res,
		reportService:   f.reports,
	}
	f.app.initViews()
	t.Cleanup(func() { f.app.shutdown() })
	return f
}

func stubInputs(t *testing.T, email string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return email, nil }
	getPassword = func(io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
