package countdown

import (
	"fmt"
	"strings"
	"time"
)

// ExpiredLabel is what an expired countdown renders as.
const ExpiredLabel = "Expired"

// Remaining is the time left until expiry. All fields are non-negative.
type Remaining struct {
	Hours   int
	Minutes int
	Seconds int
	Expired bool
}

// Compute derives the remaining time from expiresAt and now. A deadline at
// or before now is Expired.
func Compute(expiresAt, now time.Time) Remaining {
	diff := expiresAt.Sub(now)
	if diff <= 0 {
		return Remaining{Expired: true}
	}
	secs := int(diff / time.Second)
	return Remaining{
		Hours:   secs / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
	}
}

// Duration converts back to a time.Duration, zero when expired.
func (r Remaining) Duration() time.Duration {
	if r.Expired {
		return 0
	}
	return time.Duration(r.Hours)*time.Hour + time.Duration(r.Minutes)*time.Minute + time.Duration(r.Seconds)*time.Second
}

// String renders HH:MM:SS, or "Expired".
func (r Remaining) String() string {
	if r.Expired {
		return ExpiredLabel
	}
	return fmt.Sprintf("%02d:%02d:%02d", r.Hours, r.Minutes, r.Seconds)
}

// FormatDuration renders d compactly: "1h 2m 3s", "2m 3s" or "3s".
// Sub-second parts are dropped; negative durations render as "0s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	h, m, s := secs/3600, secs%3600/60, secs%60

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if h > 0 || m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))
	return strings.Join(parts, " ")
}
