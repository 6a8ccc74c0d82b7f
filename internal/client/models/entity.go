// Package models defines the entity snapshots held in synchronized
// collections and detail views.
package models

import (
	"strconv"
	"strings"
	"time"
)

// Entity is an immutable snapshot of one upstream record (a user, a
// resource, a participant, a report). Refreshes replace entities wholesale;
// nothing patches an Entity in place, so callers must treat Attrs as
// read-only.
type Entity struct {
	ID        string
	ExpiresAt time.Time
	Attrs     map[string]any
}

// HasExpiry reports whether the entity carries an expiresAt timestamp.
func (e Entity) HasExpiry() bool { return !e.ExpiresAt.IsZero() }

// Value returns the attribute at path. Dots descend into nested objects,
// so "creator.name" reads Attrs["creator"]["name"].
func (e Entity) Value(path string) (any, bool) {
	var cur any = e.Attrs
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// String returns the attribute at path rendered as a string, or "".
func (e Entity) String(path string) string {
	v, ok := e.Value(path)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// Int returns a numeric attribute truncated to int, or 0.
func (e Entity) Int(path string) int {
	v, ok := e.Value(path)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return int(x)
	case string:
		n, _ := strconv.Atoi(x)
		return n
	default:
		return 0
	}
}

// Bool returns a boolean attribute, or false.
func (e Entity) Bool(path string) bool {
	v, ok := e.Value(path)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Time parses a timestamp attribute, or returns the zero time.
func (e Entity) Time(path string) time.Time {
	v, ok := e.Value(path)
	if !ok {
		return time.Time{}
	}
	return ParseTime(v)
}

// ParseTime accepts RFC 3339 strings (with or without fractional seconds)
// and numbers of milliseconds since the Unix epoch.
func ParseTime(v any) time.Time {
	switch x := v.(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, x); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02T15:04:05", x); err == nil {
			return t
		}
	case float64:
		if x > 0 {
			return time.UnixMilli(int64(x))
		}
	}
	return time.Time{}
}

// IDs returns the ids of entities in order.
func IDs(entities []Entity) []string {
	ids := make([]string, len(entities))
	for i, e := range entities {
		ids[i] = e.ID
	}
	return ids
}
