package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g. a second surface for the same day).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrMemoryNotFound indicates that the requested memory does not exist.
	ErrMemoryNotFound = fmt.Errorf("%w: memory", ErrNotFound)

	// ErrEntryNotFound indicates that the requested gratitude entry does not exist.
	ErrEntryNotFound = fmt.Errorf("%w: gratitude entry", ErrNotFound)

	// ErrSurfaceNotFound indicates that no daily surface exists for the
	// requested user and date.
	ErrSurfaceNotFound = fmt.Errorf("%w: daily surface", ErrNotFound)

	// ErrVoiceNotFound indicates that no sender voice mapping exists for the
	// requested user and sender name.
	ErrVoiceNotFound = fmt.Errorf("%w: sender voice", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrSurfaceExists indicates that a daily surface already exists for the
	// given user and date. Callers treat this as "row already chosen" and
	// re-read the winning row.
	ErrSurfaceExists = fmt.Errorf("%w: daily surface", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
