package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	flushNotifications()

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error

	Users(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Page(ctx context.Context, args []string) error
	User(ctx context.Context, id string) error
	UpdateUser(ctx context.Context, id string, args []string) error
	DeleteUser(ctx context.Context, id string) error

	Resources(ctx context.Context) error
	Resource(ctx context.Context, id string) error
	CloseDetail(ctx context.Context) error
	Timers(ctx context.Context) error
	Refresh(ctx context.Context) error

	Stats(ctx context.Context) error
	Reports(ctx context.Context, status string) error
	Report(ctx context.Context, action, id string) error
	Notices(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: login, exit"
	helpLoggedIn  = "Available commands: me, users, search <term>, page <n> [size], user <id>, " +
		"update <id> key=value..., delete <id>, resources, resource <id>, close, timers, refresh, " +
		"stats, reports [status], report <status|delete> <id>, notices, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the admin CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
// Notifications raised while a command ran are printed after it.
//
// in must be the same reader the interactive prompts use, otherwise the
// two buffers split piped input between them.
//
// Commands other than help, login and exit require an active session.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("admin %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "login":
			_ = a.Login(ctx)
			a.flushNotifications()
			continue
		}

		if !a.isLoggedIn() {
			if isKnown(cmd) {
				printlnFn("Not logged in; use login first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "me":
			_ = a.Me(ctx)
		case "users":
			_ = a.Users(ctx)
		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))
		case "page":
			_ = a.Page(ctx, args)
		case "user":
			if id, ok := needID(args, "user"); ok {
				_ = a.User(ctx, id)
			}
		case "update":
			if id, ok := needID(args, "update"); ok {
				_ = a.UpdateUser(ctx, id, args[1:])
			}
		case "delete":
			if id, ok := needID(args, "delete"); ok {
				_ = a.DeleteUser(ctx, id)
			}
		case "resources":
			_ = a.Resources(ctx)
		case "resource":
			if id, ok := needID(args, "resource"); ok {
				_ = a.Resource(ctx, id)
			}
		case "close":
			_ = a.CloseDetail(ctx)
		case "timers":
			_ = a.Timers(ctx)
		case "refresh":
			_ = a.Refresh(ctx)
		case "stats":
			_ = a.Stats(ctx)
		case "reports":
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			_ = a.Reports(ctx, status)
		case "report":
			if len(args) < 2 {
				printlnFn("Usage: report <status|delete> <id>")
			} else {
				_ = a.Report(ctx, args[0], args[1])
			}
		case "notices":
			_ = a.Notices(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
		a.flushNotifications()
	}
}

var commands = map[string]bool{
	"logout": true, "me": true, "users": true, "search": true, "page": true,
	"user": true, "update": true, "delete": true, "resources": true, "resource": true,
	"close": true, "timers": true, "refresh": true, "stats": true, "reports": true,
	"report": true, "notices": true,
}

func isKnown(cmd string) bool { return commands[cmd] }

func needID(args []string, cmd string) (string, bool) {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return "", false
	}
	return args[0], true
}
