// Package auth holds the bearer credential attached to every upstream
// request. It is an explicitly constructed object handed to the HTTP client,
// so tests can substitute a fixed token.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoExpiry = errors.New("token carries no expiry")

// TokenSource supplies the current bearer credential. An empty token means
// requests go out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Static is a fixed token.
type Static string

func (s Static) Token(context.Context) (string, error) { return string(s), nil }

// Session is the mutable credential of a logged-in admin. Renewal is not
// handled here; a 401 simply surfaces to the caller.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession returns a Session seeded with token, which may be empty.
func NewSession(token string) *Session {
	return &Session{token: token}
}

func (s *Session) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// Set replaces the credential.
func (s *Session) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear drops the credential.
func (s *Session) Clear() { s.Set("") }

// LoggedIn reports whether a credential is present.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// ExpiresAt reads the exp claim of the credential. The signature is not
// verified: the client only needs to know when the server will start
// rejecting the token.
func (s *Session) ExpiresAt() (time.Time, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return time.Time{}, ErrNoExpiry
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}
