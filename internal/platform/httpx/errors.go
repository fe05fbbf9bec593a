// Package httpx carries the uniform response envelope and the error taxonomy
// shared by every handler. All domain errors are recovered at the operation
// boundary and converted here; nothing leaks raw store internals to callers.
package httpx

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means no valid session reached the handler.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the principal is authenticated but lacks access.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means a unique business key was violated.
	ErrConflict = errors.New("conflict")
)

// Forbidden returns a Forbidden error with the uniform user-facing message.
// The message is intentionally generic: it names the verb but never the
// record's owning group.
func Forbidden(verb string) error {
	return fmt.Errorf("you do not have permission to %s this patient: %w", verb, ErrForbidden)
}

// Conflict returns a Conflict error carrying a user-facing message.
func Conflict(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrConflict)
}

// NotFound returns a NotFound error for the named resource.
func NotFound(resource string) error {
	return fmt.Errorf("%s not found: %w", resource, ErrNotFound)
}

// UserMessage extracts the message to surface to the caller. Expected errors
// keep their wrapped message (minus the sentinel suffix); anything else is
// replaced by the generic fallback so store internals never escape.
func UserMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, ErrConflict), errors.Is(err, ErrForbidden),
		errors.Is(err, ErrNotFound), errors.Is(err, ErrNotAuthenticated):
		return trimSentinel(err.Error())
	default:
		return fallback
	}
}

func trimSentinel(msg string) string {
	for _, suffix := range []string{": conflict", ": forbidden", ": not found", ": not authenticated"} {
		if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
			return msg[:len(msg)-len(suffix)]
		}
	}
	return msg
}
