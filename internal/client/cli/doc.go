// Package cli provides the interactive admin panel command-line client.
//
// It wires configuration, the upstream HTTP client, services and the two
// synchronized views into a REPL. Typical flow: reuse a configured token or
// prompt for credentials, start the session expiry watcher, and execute
// user commands.
//
// Key features:
//   - Login / Logout / Me
//   - Users: list, search, paginate, show, delete
//   - Resources: active and private lists with live expiry countdowns,
//     detail with participants
//   - Stats and moderation reports
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, startSessionWatcher, and runREPL for details.
package cli
