package handlers

import (
	"context"
	"fmt"

	"github.com/nskaik/order-payment-api/internal/events"
	"github.com/nskaik/order-payment-api/kit/broker"
)

type NotifierContract interface {
	Notify(ctx context.Context, userID string, msg string)
}

type NotificationEvent struct {
	n NotifierContract
}

func NewNotificationEvent(n NotifierContract) *NotificationEvent {
	return &NotificationEvent{n: n}
}

// Names lists the events this handler reacts to.
func (h *NotificationEvent) Names() []string {
	return []string{
		events.OrderConfirmed{}.Name(),
		events.OrderCancelled{}.Name(),
		events.PaymentSucceeded{}.Name(),
		events.PaymentFailed{}.Name(),
	}
}

func (h *NotificationEvent) Handle(ctx context.Context, evt broker.Event) error {
	if h.n == nil {
		return nil
	}
	userID, msg, ok := Message(evt)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedEventType, evt)
	}
	h.n.Notify(ctx, userID, msg)
	return nil
}

// Message renders the owner-facing text for evt.
func Message(evt broker.Event) (userID, msg string, ok bool) {
	switch e := evt.(type) {
	case events.OrderConfirmed:
		return e.UserID, fmt.Sprintf("Your order %s has been confirmed. Total: %s.", e.OrderID, e.Total), true
	case events.OrderCancelled:
		return e.UserID, fmt.Sprintf("Your order %s has been cancelled.", e.OrderID), true
	case events.PaymentSucceeded:
		return e.UserID, fmt.Sprintf("Payment of %s for order %s succeeded (transaction %s).", e.Amount, e.OrderID, e.TransactionID), true
	case events.PaymentFailed:
		return e.UserID, fmt.Sprintf("Payment for order %s failed: %s", e.OrderID, e.Reason), true
	}
	return "", "", false
}
