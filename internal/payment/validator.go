package payment

import (
	"strings"

	"github.com/nskaik/order-payment-api/internal/gateway"
	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/nskaik/order-payment-api/kit/validation"
)

var (
	ErrNotFound          = db.NewRuleError("Payment not found.", db.ErrNotFound)
	ErrForbidden         = db.NewRuleError("This action is unauthorized.", db.ErrForbidden)
	ErrOrderNotConfirmed = db.NewRuleError("Payments can only be processed for confirmed orders.", db.ErrUnprocessable)
	ErrDuplicatePayment  = db.NewRuleError("This order already has a payment.", db.ErrUnprocessable)
)

// ProcessRequest is the payment body: the method plus the method's own
// fields at the top level.
type ProcessRequest struct {
	PaymentMethod string `json:"payment_method"`
	gateway.Data
}

func ValidateMethod(r ProcessRequest) error {
	if strings.TrimSpace(r.PaymentMethod) == "" {
		return validation.Field("payment_method", "The payment method field is required.", nil)
	}
	return nil
}
