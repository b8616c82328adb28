// Package common defines sentinel errors shared by the storage, service and
// CLI layers of coursekeeper. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Validation and credential errors surfaced to the user.
	ErrMissingFields      = errors.New("missing fields")
	ErrUserExists         = errors.New("user exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Navigation errors.
	ErrCourseNotFound    = errors.New("course not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotLoggedIn       = errors.New("not logged in")

	// Storage-level errors.
	ErrCorruptValue = errors.New("corrupt stored value")
)
