package payment

import (
	"time"

	"github.com/nskaik/order-payment-api/internal/events"
	"github.com/nskaik/order-payment-api/internal/gateway"
	"github.com/nskaik/order-payment-api/internal/order"
	"github.com/nskaik/order-payment-api/kit/broker"
)

func ToGatewayRequest(o *order.Order, req ProcessRequest) gateway.Request {
	return gateway.Request{OrderID: o.ID, Amount: o.Total, Data: req.Data}
}

// ToPaymentEvent maps a stored payment to its outcome event. Pending
// payments have no event yet.
func ToPaymentEvent(p *Payment, message string) broker.Event {
	switch p.Status {
	case StatusSuccessful:
		return events.PaymentSucceeded{
			PaymentID:     p.ID,
			OrderID:       p.OrderID,
			UserID:        p.UserID,
			Method:        p.Method,
			Amount:        p.Amount,
			TransactionID: p.TransactionID,
			At:            time.Now().UTC(),
		}
	case StatusFailed:
		return events.PaymentFailed{
			PaymentID: p.ID,
			OrderID:   p.OrderID,
			UserID:    p.UserID,
			Method:    p.Method,
			Amount:    p.Amount,
			Reason:    message,
			At:        time.Now().UTC(),
		}
	}
	return nil
}
