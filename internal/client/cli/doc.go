// Package cli provides the interactive DONATello command-line client.
//
// It wires configuration, session storage, the session-aware HTTP client,
// the application services and a REPL. When the client gives up on a session
// (refresh failed, refresh token expired) it redirects to the login entry
// point; the CLI turns that into a notice and drops back to the anonymous
// prompt. Logout always lands on the root prompt.
//
// Commands, anonymous:
//   - register, login, ping, charities, posts
//
// Commands, logged in:
//   - profile, editprofile, avatar, avatarurl, rmavatar
//   - charities, charity, addcharity
//   - posts, donate, donations
//   - ping, logout
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
