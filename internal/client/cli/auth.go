package cli

import (
	"context"
	"os"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/countdown"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for admin credentials and authenticates.
//
// On success the token is kept in the session, the prompt shows the admin
// name and the session expiry watcher starts. The password bytes are wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer clear(password)

	user, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		a.printErr("Login failed", err)
		return err
	}

	a.signedIn(user, email)
	printlnFn("Login successful")
	return nil
}

// resume validates a preconfigured token by asking the server who it
// belongs to.
func (a *App) resume(ctx context.Context) error {
	user, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.printErr("Stored token rejected", err)
		return err
	}
	a.signedIn(user, "")
	return nil
}

func (a *App) signedIn(user models.Entity, fallback string) {
	name := user.String("name")
	if name == "" {
		name = user.String("email")
	}
	if name == "" {
		name = fallback
	}

	a.mu.Lock()
	a.userName = name
	a.mu.Unlock()

	a.setMode(ModeActive)
	a.startSessionWatcher()
}

// Logout ends the session. The local credential is dropped even when the
// server call fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)

	a.stopSessionWatcher()
	a.resources.Unmount()
	a.users.CloseDetail()

	a.mu.Lock()
	a.userName = ""
	a.current = screenNone
	a.mu.Unlock()
	a.setMode(ModeAnonymous)

	if err != nil {
		a.printErr("Logout", err)
		return err
	}
	printlnFn("Logged out")
	return nil
}

// Me prints the admin the current token belongs to.
func (a *App) Me(ctx context.Context) error {
	user, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.printErr("Failed to fetch profile", err)
		return err
	}
	printlnFn(renderEntity(user, []string{"name", "email", "role"}, a.clk.Now()))
	if left, ok := a.sessionLeft(); ok {
		line := "Session: " + countdownTag(left)
		if !left.Expired {
			line += " (" + countdown.FormatDuration(left.Duration()) + " left)"
		}
		printlnFn(line)
	}
	return nil
}
