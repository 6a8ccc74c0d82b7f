// Package collections keeps the local state of named remote collections.
//
// Every Refresh tags the fetch it issues with a per-collection sequence
// number. Fetches are never cancelled; when one settles its result is
// applied only if its sequence number is higher than that of every result
// already applied to the collection, so a slow earlier request cannot
// overwrite a faster later one. Failures become state (Err, Kind, empty
// Items) plus a notification; they are never returned to the caller.
package collections
