// Package apperrors defines the error taxonomy shared by every core
// operation. Callers discriminate with errors.Is against the sentinels;
// the HTTP layer maps each kind to a status code.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing input. Not retryable.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a reference to an absent entity. Not retryable.
	ErrNotFound = errors.New("not found")

	// ErrAuthorization marks an actor lacking rights for an operation.
	ErrAuthorization = errors.New("not authorized")

	// ErrConflict marks a violated state precondition, e.g. deciding an
	// already-decided booking. The caller may re-fetch and retry only if
	// the entity is still in the expected state.
	ErrConflict = errors.New("conflict")

	// ErrStorage marks a failure of the storage collaborator. The failed
	// operation has had no effect and is safe to retry with backoff,
	// except booking creation without an idempotency key.
	ErrStorage = errors.New("storage error")
)

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

func Authorizationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrAuthorization}, args...)...)
}

func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

// Storage wraps an underlying storage failure, keeping the cause in the chain.
func Storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
