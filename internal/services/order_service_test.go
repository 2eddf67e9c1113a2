// internal/services/order_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
)

func TestEnsureAwaitingPayment(t *testing.T) {
	cases := []struct {
		status models.OrderStatus
		ok     bool
	}{
		{models.OrderStatusPending, true},
		{models.OrderStatusProcessing, false},
		{models.OrderStatusCompleted, false},
		{models.OrderStatusCancelled, false},
	}

	for _, tc := range cases {
		err := ensureAwaitingPayment(&models.Order{Status: tc.status})
		if tc.ok {
			assert.NoError(t, err, "status %s", tc.status)
		} else {
			assert.True(t, errors.Is(err, apperrors.ErrAlreadyFinalized), "status %s", tc.status)
		}
	}
}
