package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrStorageUnavailable indicates the backing store could not be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInvalidInput indicates a request rejected before any side effect.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a missing or expired admin session.
	ErrUnauthorized = errors.New("unauthorized")
)
