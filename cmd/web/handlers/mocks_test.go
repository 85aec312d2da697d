package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/nskaik/order-payment-api/cmd/web/validator"
	"github.com/nskaik/order-payment-api/internal/health"
	"github.com/nskaik/order-payment-api/internal/order"
	"github.com/nskaik/order-payment-api/internal/payment"
	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/stretchr/testify/mock"
)

type orderServiceMock struct {
	mock.Mock
	OrderServiceContract
}

func (m *orderServiceMock) Create(ctx context.Context, userID string, items []order.ItemInput) (*order.Order, error) {
	args := m.Called(ctx, userID, items)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *orderServiceMock) Get(ctx context.Context, userID, orderID string) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *orderServiceMock) List(ctx context.Context, userID string, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, userID, status)
	o, _ := args.Get(0).([]*order.Order)
	return o, args.Error(1)
}

func (m *orderServiceMock) ReplaceItems(ctx context.Context, userID, orderID string, items []order.ItemInput) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID, items)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *orderServiceMock) Delete(ctx context.Context, userID, orderID string) error {
	return m.Called(ctx, userID, orderID).Error(0)
}

func (m *orderServiceMock) Confirm(ctx context.Context, userID, orderID string) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *orderServiceMock) Cancel(ctx context.Context, userID, orderID string) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *orderServiceMock) Events(ctx context.Context, userID, orderID string) ([]db.Record, error) {
	args := m.Called(ctx, userID, orderID)
	r, _ := args.Get(0).([]db.Record)
	return r, args.Error(1)
}

type paymentServiceMock struct {
	mock.Mock
	PaymentServiceContract
}

func (m *paymentServiceMock) Process(ctx context.Context, userID, orderID string, req payment.ProcessRequest) (*payment.Outcome, error) {
	args := m.Called(ctx, userID, orderID, req)
	o, _ := args.Get(0).(*payment.Outcome)
	return o, args.Error(1)
}

func (m *paymentServiceMock) Get(ctx context.Context, userID, paymentID string) (*payment.Payment, error) {
	args := m.Called(ctx, userID, paymentID)
	p, _ := args.Get(0).(*payment.Payment)
	return p, args.Error(1)
}

func (m *paymentServiceMock) GetByOrder(ctx context.Context, userID, orderID string) (*payment.Payment, error) {
	args := m.Called(ctx, userID, orderID)
	p, _ := args.Get(0).(*payment.Payment)
	return p, args.Error(1)
}

func (m *paymentServiceMock) List(ctx context.Context, userID string) ([]*payment.Payment, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).([]*payment.Payment)
	return p, args.Error(1)
}

type healthMock struct {
	mock.Mock
}

func (m *healthMock) Check(ctx context.Context) health.Result {
	return m.Called(ctx).Get(0).(health.Result)
}

type recorderMock struct {
	mock.Mock
}

func (m *recorderMock) HTTPRequest(route, status string, d time.Duration) {
	m.Called(route, status, d)
}

// newTestRouter wires the handlers behind the real router. idem may be nil.
func newTestRouter(orders OrderServiceContract, payments PaymentServiceContract, hc HealthContract, idem PaymentIdempotencyContract) http.Handler {
	jsonV := validator.NewJSON()
	var paymentHealth PaymentHealthContract
	if hc != nil {
		paymentHealth = hc
	}
	var h *Health
	if hc != nil {
		h = NewHealth(hc)
	}
	return NewRouter(Routes{
		Order:   NewOrder(jsonV, orders),
		Payment: NewPayment(jsonV, payments, paymentHealth, idem),
		Health:  h,
	})
}
