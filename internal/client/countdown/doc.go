// Package countdown implements the per-entity expiry timers.
//
// A Countdown is a two-state machine: Running(remaining) until the wall
// clock reaches expiresAt, then Expired for good. Each tick recomputes the
// remaining time from the absolute timestamp, so missed or late ticks never
// accumulate drift. A Board owns the countdowns of one rendered collection
// and must be closed when the view goes away.
package countdown
