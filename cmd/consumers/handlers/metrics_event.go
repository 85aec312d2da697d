package handlers

import (
	"context"

	"github.com/nskaik/order-payment-api/internal/events"
	"github.com/nskaik/order-payment-api/kit/broker"
)

type MetricsContract interface {
	OrdersCreatedAdd(n int)
	OrderTransitioned(to string)
	PaymentProcessed(method, status string)
}

type MetricsEvent struct {
	m MetricsContract
}

func NewMetricsEvent(m MetricsContract) *MetricsEvent {
	return &MetricsEvent{m: m}
}

func (h *MetricsEvent) HandleAny(ctx context.Context, evt broker.Event) error {
	if h.m == nil {
		return nil
	}

	switch e := evt.(type) {
	case events.OrderCreated:
		h.m.OrdersCreatedAdd(1)
	case events.OrderConfirmed:
		h.m.OrderTransitioned("confirmed")
	case events.OrderCancelled:
		h.m.OrderTransitioned("cancelled")
	case events.PaymentSucceeded:
		h.m.PaymentProcessed(e.Method, "successful")
	case events.PaymentFailed:
		h.m.PaymentProcessed(e.Method, "failed")
	}
	return nil
}
