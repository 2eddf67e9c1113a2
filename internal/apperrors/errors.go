// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain error taxonomy. Services return these (optionally wrapped with
// context via Wrap); the response layer maps each sentinel to an HTTP status.
var (
	ErrValidation       = errors.New("validation failed")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrAlreadyFinalized = errors.New("order is already finalized")
	ErrDuplicateReview  = errors.New("review already exists for this product")
	ErrConflict         = errors.New("conflicting concurrent update")
)

// Wrap attaches context to a sentinel so errors.Is still matches it.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}

// PostgreSQL error codes, as surfaced by the pgx stack underneath the gorm
// postgres driver.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation, optionally on the named constraint. Used to translate the single
// offending write into the matching domain error instead of pre-checking.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign-key
// violation, e.g. an insert referencing a row deleted by a concurrent request.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
