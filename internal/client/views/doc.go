// Package views composes the synchronization engine into the two admin
// screens: the paginated user list with its detail panel, and the resource
// overview with live expiry countdowns.
//
// Views own their state exclusively. Mutating methods return a channel that
// is closed once the fetches they triggered have settled, so callers can
// wait for a consistent snapshot.
package views
