package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/auth"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 8 << 20
)

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	base   *url.URL
	http   *http.Client
	tokens auth.TokenSource
	log    logging.Logger
	newID  func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:5000/api". tokens may be nil.
func NewHTTPClient(baseURL string, tokens auth.TokenSource, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if tokens == nil {
		tokens = auth.Static("")
	}

	c := &HTTPClient{base: base, tokens: tokens, newID: uuid.NewString}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		hc, err := NewHTTP(timeout)
		if err != nil {
			return nil, err
		}
		c.http = hc
	}
	c.log = logging.OrNop(c.log)
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*structpb.Value, error) {
	return c.do(ctx, http.MethodPost, "/auth/admin/login", nil, map[string]any{"email": email, "password": password})
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/auth/me", nil, nil)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

func (c *HTTPClient) ActiveResources(ctx context.Context) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/resources/active", nil, nil)
}

func (c *HTTPClient) PrivateResources(ctx context.Context) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/resources/private", nil, nil)
}

func (c *HTTPClient) Resource(ctx context.Context, id string) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/resources/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) PrivateResource(ctx context.Context, id string) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/resources/private/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) Participants(ctx context.Context, id string) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/resources/"+url.PathEscape(id)+"/participants", nil, nil)
}

func (c *HTTPClient) ResourceStats(ctx context.Context) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/resources/stats", nil, nil)
}

func (c *HTTPClient) Users(ctx context.Context, page, limit int, search string) (*structpb.Value, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("search", search)
	return c.do(ctx, http.MethodGet, "/users", q, nil)
}

func (c *HTTPClient) User(ctx context.Context, id string) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, fields map[string]any) (*structpb.Value, error) {
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, fields)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
	return err
}

func (c *HTTPClient) UserStats(ctx context.Context) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/users/stats/overview", nil, nil)
}

func (c *HTTPClient) DailyActiveUsers(ctx context.Context, days int) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/users/analytics/daily-active", daysQuery(days), nil)
}

func (c *HTTPClient) UserGrowth(ctx context.Context, days int) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/users/analytics/growth", daysQuery(days), nil)
}

func (c *HTTPClient) Reports(ctx context.Context, filters map[string]string) (*structpb.Value, error) {
	q := url.Values{}
	for k, v := range filters {
		q.Set(k, v)
	}
	return c.do(ctx, http.MethodGet, "/social/reports", q, nil)
}

func (c *HTTPClient) ReportStats(ctx context.Context) (*structpb.Value, error) {
	return c.do(ctx, http.MethodGet, "/social/reports/stats", nil, nil)
}

func (c *HTTPClient) UpdateReport(ctx context.Context, id string, fields map[string]any) (*structpb.Value, error) {
	return c.do(ctx, http.MethodPut, "/social/reports/"+url.PathEscape(id), nil, fields)
}

func (c *HTTPClient) DeleteReport(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/social/reports/"+url.PathEscape(id), nil, nil)
	return err
}

func daysQuery(days int) url.Values {
	if days <= 0 {
		days = 30
	}
	return url.Values{"days": {strconv.Itoa(days)}}
}

// do sends one request and decodes the body. Non-2xx statuses come back as
// *StatusError; network failures wrap ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any) (*structpb.Value, error) {
	// path carries escaped segments; keep them escaped on the wire.
	u := *c.base
	u.RawPath = c.base.EscapedPath() + path
	unescaped, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	u.Path = unescaped
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}

	reqID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: token: %v", ErrUnauthorized, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.With("method", method, "path", path, "request_id", reqID)
	log.Debug(ctx, "request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %w", ErrUnavailable, method, path, err)
	}

	if resp.StatusCode >= 400 {
		se := &StatusError{Method: method, Path: path, Code: resp.StatusCode}
		if v, derr := normalize.Decode(raw); derr == nil {
			se.Message, _ = normalize.String(v, "message")
		}
		log.Debug(ctx, "response", "status", resp.StatusCode)
		return nil, se
	}

	v, err := normalize.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrBadResponse, method, path, err)
	}
	log.Debug(ctx, "response", "status", resp.StatusCode, "bytes", len(raw))
	return v, nil
}
