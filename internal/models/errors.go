package models

import "errors"

// Domain errors shared between repositories, services and handlers.
// Repositories translate driver-specific failures into these so the
// HTTP layer never inspects backend error strings.
var (
	// ErrMissingCredentials is returned when a username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrDuplicateUser is returned when a username is already taken.
	ErrDuplicateUser = errors.New("username already exists")
	// ErrInvalidCredentials is returned on unknown username or password mismatch.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotFound is returned when a requested row does not exist or is not
	// owned by the requesting user.
	ErrNotFound = errors.New("not found")
	// ErrDurationUnavailable is returned when the media prober cannot
	// determine a file's duration.
	ErrDurationUnavailable = errors.New("duration unavailable")
)
