// Package client is the session-aware HTTP client of the DONATello API.
//
// # Overview
//
// HTTPClient wraps every outbound call: it joins the path to the base URL,
// attaches the access credential (Authorization header or
// access_token_cookie), tags the request with an X-Request-ID and decodes
// the {data, errors} envelope.
//
// When a request fails with an expired session (401, or 422 with a
// "signature has expired" detail) the client refreshes the session once
// and replays the request once. Concurrent failures share one refresh. If
// the refresh cannot succeed the session is dropped and the Navigator is
// sent to LoginEntryPoint. Logout always drops the session and goes to
// RootEntryPoint.
//
// # Error Handling
//
// Non-2xx responses come back as *APIError with the server's details.
// Bodies of unknown shape yield *MalformedEnvelopeError. Sentinels for
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrSessionExpired,
// ErrMalformedEnvelope, ErrNotAuthenticated.
//
// See Also
//
//   - Interface: Client
//   - HTTP impl: HTTPClient
//   - Session:   session.Session
package client
