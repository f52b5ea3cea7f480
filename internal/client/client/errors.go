package client

import "errors"

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSessionExpired    = errors.New("session expired")
	ErrMalformedEnvelope = errors.New("malformed response envelope")
	ErrNotAuthenticated  = errors.New("not authenticated")
)
