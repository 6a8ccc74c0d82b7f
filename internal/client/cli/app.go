package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/auth"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/client"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/config"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/countdown"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/notify"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/query"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/services"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/views"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/clock"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

// Mode is the state of the admin session.
type Mode string

const (
	ModeAnonymous Mode = "anonymous"
	ModeActive    Mode = "active"
	ModeExpired   Mode = "expired"
)

// screen remembers which view "refresh" applies to.
type screen int

const (
	screenNone screen = iota
	screenUsers
	screenResources
)

type App struct {
	config *config.Config
	clk    clock.Clock
	log    logging.Logger
	reader *bufio.Reader // shared by the REPL and the prompts
	notes  *notify.Recorder

	notifier notify.Notifier

	authService     services.AuthService
	userService     services.UserService
	resourceService services.ResourceService
	reportService   services.ReportService

	users     *views.Users
	resources *views.Resources

	mu       sync.Mutex
	Mode     Mode
	userName string
	expiry   *countdown.Countdown
	current  screen
	expired  map[string]bool // resources already announced as expired
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	log = logging.OrNop(log)

	session := auth.NewSession(c.Token)
	apiClient, err := client.NewHTTPClient(c.ServerURL, session, c.RequestTimeout, client.WithLogger(log.With("component", "http")))
	if err != nil {
		return nil, err
	}

	a := &App{
		config: c,
		clk:    clock.Real(),
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		notes:  &notify.Recorder{},
		Mode:   ModeAnonymous,

		authService:     services.NewAuthService(apiClient, session, log),
		userService:     services.NewUserService(apiClient, log),
		resourceService: services.NewResourceService(apiClient, log),
		reportService:   services.NewReportService(apiClient, log),
	}
	a.initViews()
	return a, nil
}

func (a *App) initViews() {
	a.notifier = notify.Multi{a.notes, notify.NewLog(a.log)}
	deps := views.Deps{
		Clock:        a.clk,
		Log:          a.log,
		Notifier:     a.notifier,
		TickInterval: a.config.TickInterval,
	}
	a.users = views.NewUsers(a.userService, a.config.PageSize, deps)
	a.users.Query().Subscribe(func(q query.State) {
		a.log.Debug(context.Background(), "user query changed", "page", q.Page, "page_size", q.PageSize, "search", q.Search)
	})
	a.resources = views.NewResources(a.resourceService, deps, views.OnTick(a.onResourceTick))
}

// onResourceTick announces a resource the moment its countdown runs out.
// Countdowns that start out expired never tick and are not announced.
func (a *App) onResourceTick(id string, r countdown.Remaining) {
	if !r.Expired {
		return
	}
	a.mu.Lock()
	if a.expired == nil {
		a.expired = make(map[string]bool)
	}
	seen := a.expired[id]
	a.expired[id] = true
	a.mu.Unlock()

	if !seen {
		a.notifier.Notify(context.Background(), notify.Notification{
			Level:   notify.LevelInfo,
			Message: fmt.Sprintf("Resource %s expired", id),
		})
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "session mode changed", "mode", string(mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run drives the interactive session until the user exits. SIGINT and
// SIGTERM cancel in-flight requests and release timers before exiting.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.initSignalHandler(cancel)

	defer a.shutdown()
	a.Root(ctx)
}

func (a *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
		a.shutdown()
		printlnFn("\nBye!")
		os.Exit(0)
	}()
}

func (a *App) shutdown() {
	a.stopSessionWatcher()
	a.resources.Unmount()
	if err := a.authService.Close(); err != nil {
		a.log.Warn(context.Background(), "close client", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.mode() == ModeActive
}

// startSessionWatcher runs a countdown on the token expiry and switches to
// ModeExpired when it runs out. Tokens without an exp claim are not
// watched.
func (a *App) startSessionWatcher() {
	a.stopSessionWatcher()

	exp, err := a.authService.ExpiresAt()
	if err != nil {
		a.log.Debug(context.Background(), "session expiry unknown", "error", err)
		return
	}

	c := countdown.Start(a.clk, "session", exp, a.config.TickInterval, func(_ string, r countdown.Remaining) {
		if r.Expired {
			a.setMode(ModeExpired)
		}
	})
	if c.Remaining().Expired {
		a.setMode(ModeExpired)
	}

	a.mu.Lock()
	a.expiry = c
	a.mu.Unlock()
}

func (a *App) stopSessionWatcher() {
	a.mu.Lock()
	c := a.expiry
	a.expiry = nil
	a.mu.Unlock()
	if c != nil {
		c.Stop()
	}
}

// sessionLeft is the remaining session time, if a watcher runs.
func (a *App) sessionLeft() (countdown.Remaining, bool) {
	a.mu.Lock()
	c := a.expiry
	a.mu.Unlock()
	if c == nil {
		return countdown.Remaining{}, false
	}
	return c.Remaining(), true
}

// await blocks until done is closed or ctx ends.
func await(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// flushNotifications prints queued notifications.
func (a *App) flushNotifications() {
	for _, n := range a.notes.Drain() {
		printlnFn(noticeLine(n))
	}
}

func (a *App) printErr(what string, err error) {
	printlnFn(fmt.Sprintf("%s: %s", what, err))
}
