package entity

import "errors"

var (
	ErrNotFound          = errors.New("notification not found")
	ErrConflictingData   = errors.New("conflicting data")
	ErrInvalidData       = errors.New("invalid data")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrInvalidTransition = errors.New("transition not allowed")
	ErrRetryExhausted    = errors.New("retry budget exhausted")
	ErrUserNotFound      = errors.New("user not found")
)
