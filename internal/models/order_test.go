// internal/models/order_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderSignatureRoundTrip(t *testing.T) {
	secret := []byte("test-signing-secret")

	order := &Order{
		TransactionID: uuid.New(),
		TotalAmount:   decimal.RequireFromString("149.90"),
	}
	order.Sign(secret)

	assert.Len(t, order.DigitalSignature, 64)
	assert.True(t, order.VerifySignature(secret))
}

func TestOrderSignatureDetectsTamperedAmount(t *testing.T) {
	secret := []byte("test-signing-secret")

	order := &Order{
		TransactionID: uuid.New(),
		TotalAmount:   decimal.RequireFromString("149.90"),
	}
	order.Sign(secret)

	order.TotalAmount = decimal.RequireFromString("1.49")
	assert.False(t, order.VerifySignature(secret))
}

func TestOrderSignatureDetectsTamperedTransactionID(t *testing.T) {
	secret := []byte("test-signing-secret")

	order := &Order{
		TransactionID: uuid.New(),
		TotalAmount:   decimal.RequireFromString("20.00"),
	}
	order.Sign(secret)

	order.TransactionID = uuid.New()
	assert.False(t, order.VerifySignature(secret))
}

func TestOrderSignatureWrongSecret(t *testing.T) {
	order := &Order{
		TransactionID: uuid.New(),
		TotalAmount:   decimal.RequireFromString("20.00"),
	}
	order.Sign([]byte("secret-a"))

	assert.False(t, order.VerifySignature([]byte("secret-b")))
}

func TestOrderSignatureStableAcrossAmountRepresentations(t *testing.T) {
	secret := []byte("test-signing-secret")
	id := uuid.New()

	a := &Order{TransactionID: id, TotalAmount: decimal.RequireFromString("20")}
	b := &Order{TransactionID: id, TotalAmount: decimal.RequireFromString("20.00")}

	assert.Equal(t, a.ComputeSignature(secret), b.ComputeSignature(secret))
}

func TestOrderIsFinalized(t *testing.T) {
	cases := []struct {
		status    OrderStatus
		finalized bool
	}{
		{OrderStatusPending, false},
		{OrderStatusProcessing, false},
		{OrderStatusCompleted, true},
		{OrderStatusCancelled, true},
	}

	for _, tc := range cases {
		order := &Order{Status: tc.status}
		assert.Equal(t, tc.finalized, order.IsFinalized(), "status %s", tc.status)
	}
}
