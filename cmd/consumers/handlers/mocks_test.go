package handlers

import (
	"context"

	"github.com/nskaik/order-payment-api/internal/audit"
	"github.com/nskaik/order-payment-api/kit/broker"
	"github.com/stretchr/testify/mock"
)

type auditorMock struct {
	mock.Mock
	AuditorContract
}

func (m *auditorMock) Record(ctx context.Context, line audit.Line) error {
	return m.Called(ctx, line).Error(0)
}

type metricsMock struct {
	mock.Mock
	MetricsContract
}

func (m *metricsMock) OrdersCreatedAdd(n int) { m.Called(n) }

func (m *metricsMock) OrderTransitioned(to string) { m.Called(to) }

func (m *metricsMock) PaymentProcessed(method, status string) { m.Called(method, status) }

type notifierMock struct {
	mock.Mock
	NotifierContract
}

func (m *notifierMock) Notify(ctx context.Context, userID string, msg string) {
	m.Called(ctx, userID, msg)
}

type journalMock struct {
	mock.Mock
	JournalContract
}

func (m *journalMock) Append(ctx context.Context, aggregateID string, evt broker.Event) error {
	return m.Called(ctx, aggregateID, evt).Error(0)
}

type unkeyedEvent struct{}

func (unkeyedEvent) Name() string { return "test.unkeyed" }
