package services

import (
	"context"
	"fmt"
	"time"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/auth"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/client"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

// AuthService defines the admin session operations.
//
// Contract:
//   - Login: authenticate, store the bearer token in the session, return the admin.
//   - CurrentUser: fetch the admin the current token belongs to.
//   - Logout: notify the server and clear the session even if the call fails.
//   - ExpiresAt: expiry of the current token, read from its claims.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Entity, error)
	CurrentUser(ctx context.Context) (models.Entity, error)
	Logout(ctx context.Context) error
	LoggedIn() bool
	ExpiresAt() (time.Time, error)
	Close() error
}

type authService struct {
	client  client.Client
	session *auth.Session
	log     logging.Logger
}

// NewAuthService constructs an AuthService that stores credentials in s.
func NewAuthService(c client.Client, s *auth.Session, log logging.Logger) AuthService {
	return &authService{client: c, session: s, log: logging.OrNop(log)}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Entity, error) {
	v, err := a.client.Login(ctx, email, password)
	if err != nil {
		return models.Entity{}, fmt.Errorf("login error: %w", err)
	}

	token, ok := normalize.String(v, "token")
	if !ok || token == "" {
		return models.Entity{}, fmt.Errorf("login error: %w: no token in response", client.ErrBadResponse)
	}
	a.session.Set(token)

	user := entity(ctx, a.log, "login", v, fieldUser, "")
	a.log.Info(ctx, "logged in", "user", user.ID)
	return user, nil
}

func (a *authService) CurrentUser(ctx context.Context) (models.Entity, error) {
	v, err := a.client.CurrentUser(ctx)
	if err != nil {
		return models.Entity{}, fmt.Errorf("current user error: %w", err)
	}
	return entity(ctx, a.log, "me", v, fieldUser, ""), nil
}

func (a *authService) Logout(ctx context.Context) error {
	defer a.session.Clear()
	if err := a.client.Logout(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) LoggedIn() bool { return a.session.LoggedIn() }

func (a *authService) ExpiresAt() (time.Time, error) { return a.session.ExpiresAt() }

// Close releases resources held by the underlying client.
func (a *authService) Close() error { return a.client.Close() }
