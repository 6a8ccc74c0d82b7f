// Package client is the upstream collaborator of the admin panel: an HTTP
// JSON API whose responses come in inconsistent envelopes.
//
// # Overview
//
// The package provides:
//  1. The Client interface, one method per upstream endpoint. Methods return
//     the decoded body as a *structpb.Value and leave shaping to package
//     normalize.
//  2. HTTPClient, the net/http implementation. It attaches the bearer
//     credential from an auth.TokenSource and a fresh X-Request-ID to every
//     request, and maps HTTP status codes to sentinel errors.
//  3. NewTransport, an HTTP/2 capable, gzip negotiating round tripper.
//
// # Error Handling
//
// Failures are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable (network, 5xx), ErrBadResponse, ErrRequestRejected,
// ErrUnauthorized (401/403) and ErrNotFound (404). KindOf folds them into the
// taxonomy the synchronizer records in collection state. Nothing here
// retries; a 401 is surfaced and session renewal is left to the caller.
package client
