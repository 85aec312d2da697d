package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/nskaik/order-payment-api/kit/validation"
)

const (
	MsgCardDeclined   = "Card declined: insufficient funds"
	MsgCardProcessing = "Payment processing failed. Please try again."

	creditCardSuccessRate = 0.80
	DefaultCardLatency    = 100 * time.Millisecond
)

// CreditCard simulates a card network. Cards ending in 0000 always
// succeed, cards ending in 9999 are always declined, anything else
// succeeds four times out of five.
type CreditCard struct {
	latency time.Duration
	roll    func() float64
	now     func() time.Time
}

func NewCreditCard(latency time.Duration) *CreditCard {
	return &CreditCard{latency: latency, roll: defaultRoll, now: time.Now}
}

func (g *CreditCard) Charge(ctx context.Context, req Request) (Result, error) {
	if err := wait(ctx, g.latency); err != nil {
		return Result{}, err
	}

	number := digitsOnly(req.Data.CardNumber)
	switch lastFour(number) {
	case "0000":
		return Successful(transactionID("CC", g.now())), nil
	case "9999":
		return Failed(MsgCardDeclined), nil
	}
	if g.roll() < creditCardSuccessRate {
		return Successful(transactionID("CC", g.now())), nil
	}
	return Failed(MsgCardProcessing), nil
}

func (g *CreditCard) Validate(data Data) validation.Errors {
	errs := validation.Errors{}

	number := digitsOnly(data.CardNumber)
	switch {
	case strings.TrimSpace(data.CardNumber) == "":
		errs.Add("card_number", "The card number field is required.")
	case len(number) != len(strings.NewReplacer(" ", "", "-", "").Replace(data.CardNumber)):
		errs.Add("card_number", "The card number must contain only digits.")
	case len(number) < 13 || len(number) > 19:
		errs.Add("card_number", "The card number must be between 13 and 19 digits.")
	}

	if len(data.CardHolderName) > 255 {
		errs.Add("card_holder_name", "The card holder name may not be greater than 255 characters.")
	}

	if data.ExpiryMonth < 1 || data.ExpiryMonth > 12 {
		errs.Add("expiry_month", "The expiry month must be between 1 and 12.")
	}
	now := g.now()
	switch {
	case data.ExpiryYear == 0:
		errs.Add("expiry_year", "The expiry year field is required.")
	case data.ExpiryYear < now.Year():
		errs.Add("expiry_year", "The card has expired.")
	case data.ExpiryYear == now.Year() && data.ExpiryMonth >= 1 && data.ExpiryMonth < int(now.Month()):
		errs.Add("expiry_month", "The card has expired.")
	}

	cvv := digitsOnly(data.CVV)
	if len(cvv) != len(data.CVV) || len(cvv) < 3 || len(cvv) > 4 {
		errs.Add("cvv", "The cvv must be 3 or 4 digits.")
	}
	return errs
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lastFour(number string) string {
	if len(number) < 4 {
		return number
	}
	return number[len(number)-4:]
}
