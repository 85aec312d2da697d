package gateway

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/nskaik/order-payment-api/kit/validation"
)

const (
	MsgPayPalDeclined   = "PayPal payment declined: account verification required"
	MsgPayPalProcessing = "PayPal payment could not be processed. Please try again."

	payPalSuccessRate    = 0.85
	DefaultPayPalLatency = 150 * time.Millisecond
)

// PayPal simulates a wallet provider keyed on the payer's email: "success"
// in the address always succeeds, "fail" is always declined.
type PayPal struct {
	latency time.Duration
	roll    func() float64
	now     func() time.Time
}

func NewPayPal(latency time.Duration) *PayPal {
	return &PayPal{latency: latency, roll: defaultRoll, now: time.Now}
}

func (g *PayPal) Charge(ctx context.Context, req Request) (Result, error) {
	if err := wait(ctx, g.latency); err != nil {
		return Result{}, err
	}

	email := strings.ToLower(req.Data.PayPalEmail)
	switch {
	case strings.Contains(email, "success"):
		return Successful(transactionID("PP", g.now())), nil
	case strings.Contains(email, "fail"):
		return Failed(MsgPayPalDeclined), nil
	}
	if g.roll() < payPalSuccessRate {
		return Successful(transactionID("PP", g.now())), nil
	}
	return Failed(MsgPayPalProcessing), nil
}

func (g *PayPal) Validate(data Data) validation.Errors {
	errs := validation.Errors{}
	email := strings.TrimSpace(data.PayPalEmail)
	if email == "" {
		errs.Add("paypal_email", "The paypal email field is required.")
		return errs
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs.Add("paypal_email", "The paypal email must be a valid email address.")
	}
	return errs
}
