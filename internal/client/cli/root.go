package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	a.mu.Lock()
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s += string(a.Mode)
	}
	a.mu.Unlock()

	if left, ok := a.sessionLeft(); ok && !left.Expired {
		s += " " + left.String()
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, establishes a session and runs the REPL until the
// user exits or stdin closes.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the admin panel CLI (type 'help' for commands)")

	if a.authService.LoggedIn() {
		_ = a.resume(ctx)
	} else {
		_ = a.Login(ctx)
	}
	a.flushNotifications()

	runREPL(ctx, a, a.getStatus, a.reader)
}
