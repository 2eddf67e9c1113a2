// internal/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrNotFound, "product %s", "abc")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.Contains(t, err.Error(), "product abc")
}

func TestWrapNested(t *testing.T) {
	inner := Wrap(ErrAlreadyFinalized, "order is completed")
	outer := fmt.Errorf("payment: %w", inner)

	assert.True(t, errors.Is(outer, ErrAlreadyFinalized))
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_reviews_product_user"}

	assert.True(t, IsUniqueViolation(pgErr, "idx_reviews_product_user"))
	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.False(t, IsUniqueViolation(pgErr, "idx_carts_user_active"))
}

func TestIsUniqueViolationWrapped(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_carts_user_active"}
	wrapped := fmt.Errorf("create cart: %w", pgErr)

	assert.True(t, IsUniqueViolation(wrapped, "idx_carts_user_active"))
}

func TestIsUniqueViolationOtherErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(nil, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "fk_cart_items_product"}
	wrapped := fmt.Errorf("insert cart item: %w", fk)

	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsForeignKeyViolation(wrapped))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
	assert.False(t, IsForeignKeyViolation(nil))
}
