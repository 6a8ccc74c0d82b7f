package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrBadResponse     = errors.New("undecodable response")
	ErrRequestRejected = errors.New("request rejected")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
)

// StatusError is a non-2xx response. It unwraps to the sentinel chosen by
// the status code.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string // upstream "message" field, if any
}

func (e *StatusError) Error() string {
	s := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusUnauthorized, e.Code == http.StatusForbidden:
		return ErrUnauthorized
	case e.Code == http.StatusNotFound:
		return ErrNotFound
	case e.Code >= 500:
		return ErrUnavailable
	default:
		return ErrRequestRejected
	}
}

// Kind classifies a failure for display and state.
type Kind int

const (
	KindNone      Kind = iota
	KindTransport      // the request never produced usable data
	KindShape          // decoded, but no envelope strategy matched
	KindAuth           // 401/403
	KindNotFound       // 404
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindShape:
		return "shape"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	default:
		return "none"
	}
}

// KindOf maps an error returned by a Client to its Kind. Unknown errors,
// including context cancellation, count as transport failures.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnauthorized):
		return KindAuth
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindTransport
	}
}
