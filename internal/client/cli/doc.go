// Package cli provides the interactive Artstore command-line client.
//
// It wires configuration, the local session database, the API services and
// an interactive REPL. A saved session is restored on start, so a user who
// logged in earlier lands straight in the storefront.
//
// Key features:
//   - Register / Login / Logout
//   - Browse the gallery and buy artworks
//   - Show the purchased collection with totals
//   - Profile, balance top-ups and profile edits with photo upload
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// Only one action runs at a time; a second one is refused until the first
// completes. See App and runREPL for details.
package cli
