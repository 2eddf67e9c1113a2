// internal/payment/gateway_test.go
package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
)

func validCard() CardDetails {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	return CardDetails{
		CardNumber: "4242424242424242",
		Expiry:     fmt.Sprintf("%02d/%02d", int(expiry.Month()), expiry.Year()%100),
		CVV:        "123",
	}
}

func TestCardDetailsValid(t *testing.T) {
	assert.NoError(t, validCard().Validate())
}

func TestCardDetailsNumberWithSpaces(t *testing.T) {
	card := validCard()
	card.CardNumber = "4242 4242 4242 4242"
	assert.NoError(t, card.Validate())
}

func TestCardDetailsInvalidNumber(t *testing.T) {
	cases := []string{"", "1234", "42424242424242424242424", "4242-4242-4242-4242"}
	for _, number := range cases {
		card := validCard()
		card.CardNumber = number
		err := card.Validate()
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "number %q", number)
	}
}

func TestCardDetailsInvalidExpiry(t *testing.T) {
	cases := []string{"", "13/30", "00/30", "1/30", "01-30", "0130"}
	for _, expiry := range cases {
		card := validCard()
		card.Expiry = expiry
		err := card.Validate()
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "expiry %q", expiry)
	}
}

func TestCardDetailsExpiredCard(t *testing.T) {
	card := validCard()
	card.Expiry = "01/20"
	err := card.Validate()
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestCardDetailsInvalidCVV(t *testing.T) {
	cases := []string{"", "12", "12345", "abc"}
	for _, cvv := range cases {
		card := validCard()
		card.CVV = cvv
		err := card.Validate()
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "cvv %q", cvv)
	}
}

func testOrder() *models.Order {
	return &models.Order{
		TransactionID: uuid.New(),
		TotalAmount:   decimal.RequireFromString("49.90"),
		Status:        models.OrderStatusProcessing,
	}
}

func TestSimulatedGatewayAlwaysApproves(t *testing.T) {
	g := NewSeededGateway(1.0, 42)

	for i := 0; i < 50; i++ {
		outcome, err := g.Authorize(context.Background(), testOrder(), validCard())
		assert.NoError(t, err)
		assert.Equal(t, OutcomeApproved, outcome)
	}
}

func TestSimulatedGatewayAlwaysDeclines(t *testing.T) {
	g := NewSeededGateway(0, 42)

	for i := 0; i < 50; i++ {
		outcome, err := g.Authorize(context.Background(), testOrder(), validCard())
		assert.NoError(t, err)
		assert.Equal(t, OutcomeDeclined, outcome)
	}
}

func TestSimulatedGatewayDeterministicWithSeed(t *testing.T) {
	a := NewSeededGateway(0.8, 7)
	b := NewSeededGateway(0.8, 7)

	for i := 0; i < 100; i++ {
		outcomeA, errA := a.Authorize(context.Background(), testOrder(), validCard())
		outcomeB, errB := b.Authorize(context.Background(), testOrder(), validCard())
		assert.NoError(t, errA)
		assert.NoError(t, errB)
		assert.Equal(t, outcomeA, outcomeB)
	}
}

func TestSimulatedGatewayClampsRate(t *testing.T) {
	assert.Equal(t, 0.8, NewSimulatedGateway(1.5).successRate)
	assert.Equal(t, 0.8, NewSimulatedGateway(-0.2).successRate)
	assert.Equal(t, 0.3, NewSimulatedGateway(0.3).successRate)
}

func TestSimulatedGatewayCancelledContext(t *testing.T) {
	g := NewSeededGateway(1.0, 42)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := g.Authorize(ctx, testOrder(), validCard())
	assert.Error(t, err)
	assert.Equal(t, OutcomeDeclined, outcome)
}
