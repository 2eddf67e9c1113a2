// internal/payment/gateway.go
package payment

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
)

// Outcome is a gateway's final word on an authorization attempt.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeDeclined Outcome = "declined"
)

// Gateway authorizes a payment for an order. The surrounding state machine
// never changes shape across implementations: the simulated gateway and a real
// integration are drop-in replacements for each other.
type Gateway interface {
	Authorize(ctx context.Context, order *models.Order, card CardDetails) (Outcome, error)
}

// CardDetails is the payment form input. Only the format is checked; no
// gateway is contacted during validation.
type CardDetails struct {
	CardNumber string `json:"card_number" validate:"required"`
	Expiry     string `json:"expiry" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
}

var (
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// Validate performs the structural checks: card-number length, MM/YY expiry in
// the future, CVV length.
func (c CardDetails) Validate() error {
	number := strings.ReplaceAll(c.CardNumber, " ", "")
	if !cardNumberPattern.MatchString(number) {
		return apperrors.Wrap(apperrors.ErrValidation, "card number must be 13-19 digits")
	}

	match := expiryPattern.FindStringSubmatch(c.Expiry)
	if match == nil {
		return apperrors.Wrap(apperrors.ErrValidation, "expiry must be in MM/YY format")
	}
	month, _ := strconv.Atoi(match[1])
	year, _ := strconv.Atoi(match[2])
	expires := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if !expires.After(time.Now().UTC()) {
		return apperrors.Wrap(apperrors.ErrValidation, "card is expired")
	}

	if !cvvPattern.MatchString(c.CVV) {
		return apperrors.Wrap(apperrors.ErrValidation, "cvv must be 3 or 4 digits")
	}

	return nil
}
