// Package session holds the client-side record of an authenticated user.
//
// A Session is an explicit object injected into the HTTP client. It tracks
// a small state machine:
//
//	ANONYMOUS     --Establish-------> AUTHENTICATED
//	AUTHENTICATED --Establish-------> AUTHENTICATED (login over a live session)
//	AUTHENTICATED --BeginRefresh----> REFRESHING
//	REFRESHING    --CompleteRefresh-> AUTHENTICATED
//	REFRESHING    --FailRefresh-----> ANONYMOUS
//	any state     --Clear-----------> ANONYMOUS
//
// SetUserID fills in the user id of a non-anonymous session without
// changing its state. Any other transition returns ErrInvalidTransition.
// Credential writes are persisted to a metadata.Repository under the keys
// access_token, refresh_token and user_id so a session survives restarts.
//
// Every credential write bumps Generation, which lets callers tell whether
// the credential they sent a request with is still current.
package session
