package services

import "errors"

var (
	ErrAvatarsDisabled = errors.New("avatar storage is not configured")
	ErrInvalidAmount   = errors.New("donation amount must be positive")
)
