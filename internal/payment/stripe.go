// internal/payment/stripe.go
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
)

// StripeGateway is the real integration behind the same Gateway interface as
// the simulation. Selected with PAYMENT_PROVIDER=stripe.
type StripeGateway struct {
	currency string
}

func NewStripeGateway(secretKey, currency string) *StripeGateway {
	stripe.Key = secretKey
	if currency == "" {
		currency = "usd"
	}
	return &StripeGateway{currency: currency}
}

func (g *StripeGateway) Authorize(ctx context.Context, order *models.Order, card CardDetails) (Outcome, error) {
	amountInCents := order.TotalAmount.Shift(2).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(g.currency),
		Confirm:  stripe.Bool(true),
	}
	params.Context = ctx
	params.AddMetadata("transaction_id", order.TransactionID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return OutcomeDeclined, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		return OutcomeApproved, nil
	}
	return OutcomeDeclined, nil
}
