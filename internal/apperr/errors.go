// Package apperr defines the error taxonomy shared across the service.
// Callers classify failures with errors.Is against the sentinels below;
// the original cause travels along via fmt.Errorf("%w: ...") wrapping.
package apperr

import "errors"

var (
	// ErrValidation marks malformed or missing user input.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a uniqueness violation (identity already exists).
	ErrConflict = errors.New("already exists")

	// ErrAuthentication marks bad credentials or a missing session.
	ErrAuthentication = errors.New("authentication error")

	// ErrStorage marks an infrastructure failure in the storage layer.
	ErrStorage = errors.New("storage error")

	// ErrNotFound marks a lookup that matched no row.
	ErrNotFound = errors.New("not found")

	// ErrNotification marks an email dispatch failure. Non-fatal: the
	// operation that triggered the email has already been persisted.
	ErrNotification = errors.New("notification error")
)
