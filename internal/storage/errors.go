package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/nordqvist/webshop/internal/apperr"
)

// Aliases into the shared taxonomy so repositories only import storage.
var (
	ErrFailure  = apperr.ErrStorage
	ErrConflict = apperr.ErrConflict
	ErrNotFound = apperr.ErrNotFound
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = pq.ErrorCode("23505")

// MapError translates a driver error into the shared taxonomy while
// keeping the original cause in the chain. A duplicate key becomes
// ErrConflict so callers can treat it as a user-correctable outcome;
// everything else is an infrastructure failure.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return fmt.Errorf("%w: %w", ErrFailure, err)
}
