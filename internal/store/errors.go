package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or when the database rejects it with a constraint
	// violation. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrQueryFailed is returned when a query against an existing schema
	// fails unexpectedly. Such failures are surfaced to the caller
	// per-request and never retried: retrying a non-idempotent write risks
	// duplication.
	ErrQueryFailed = errors.New("query failed")
)

// ConnectionError reports that a usable database session could not be
// obtained. Exhausted is true when the bounded retry budget ran out;
// it is false when acquisition was abandoned early, e.g. because the
// caller's context was canceled.
type ConnectionError struct {
	Attempts  int   // attempts made before giving up
	Exhausted bool  // true when the full retry budget was spent
	Cause     error // last error returned by the dial attempt
}

// Error implements the error interface for ConnectionError.
func (e *ConnectionError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf(
			"database unreachable after %d attempts: %v",
			e.Attempts,
			e.Cause,
		)
	}
	return fmt.Sprintf(
		"database connection attempt abandoned after %d attempts: %v",
		e.Attempts,
		e.Cause,
	)
}

// Unwrap returns the last underlying dial error to support errors.Is/errors.As.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// IsConnectionError reports whether err is or wraps a ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidEntityError checks if the error reports an entity the store
// refused to persist, whether from domain validation or a database
// constraint.
func IsInvalidEntityError(err error) bool {
	return errors.Is(err, ErrInvalidEntity)
}
