// internal/utils/response_test.go
package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
)

func domainError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	DomainErrorResponse(c, err)
	return w
}

func TestDomainErrorResponseMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"empty cart", apperrors.ErrEmptyCart, http.StatusBadRequest, "EMPTY_CART"},
		{"finalized", apperrors.ErrAlreadyFinalized, http.StatusConflict, "ALREADY_FINALIZED"},
		{"duplicate review", apperrors.ErrDuplicateReview, http.StatusConflict, "DUPLICATE_REVIEW"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "CONFLICT"},
	}

	for _, tc := range cases {
		w := domainError(t, apperrors.Wrap(tc.err, "context"))
		assert.Equal(t, tc.status, w.Code, tc.name)
		assert.Contains(t, w.Body.String(), tc.code, tc.name)
	}
}

func TestDomainErrorResponseUnknownError(t *testing.T) {
	w := domainError(t, errors.New("driver: bad connection"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	// Raw database errors must not leak to the client.
	assert.NotContains(t, w.Body.String(), "driver")
}
