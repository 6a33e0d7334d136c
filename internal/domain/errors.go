package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrAlreadyRegistered  = errors.New("already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotConfigured signals that the backend endpoint or API key is
	// missing. The client layer pattern-matches this condition to rewrite
	// the user-facing message, so it must stay distinguishable from plain
	// network failures.
	ErrNotConfigured = errors.New("backend is not configured")
)
