package payment

import (
	"context"

	"github.com/nskaik/order-payment-api/internal/gateway"
	"github.com/nskaik/order-payment-api/internal/order"
	"github.com/nskaik/order-payment-api/kit/broker"
	"github.com/nskaik/order-payment-api/kit/validation"
	"github.com/stretchr/testify/mock"
)

type RepositoryMock struct {
	mock.Mock
	RepositoryContract
}

func (m *RepositoryMock) Create(ctx context.Context, p *Payment) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *RepositoryMock) Get(ctx context.Context, paymentID string) (*Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *RepositoryMock) GetByOrder(ctx context.Context, orderID string) (*Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *RepositoryMock) List(ctx context.Context, userID string) ([]*Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Payment), args.Error(1)
}

type OrderReaderMock struct {
	mock.Mock
}

func (m *OrderReaderMock) Get(ctx context.Context, userID, orderID string) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type GatewayResolverMock struct {
	mock.Mock
}

func (m *GatewayResolverMock) Resolve(method string) (gateway.Gateway, error) {
	args := m.Called(method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gateway.Gateway), args.Error(1)
}

type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) Process(ctx context.Context, req gateway.Request) gateway.Result {
	args := m.Called(ctx, req)
	return args.Get(0).(gateway.Result)
}

func (m *GatewayMock) Validate(data gateway.Data) validation.Errors {
	args := m.Called(data)
	if args.Get(0) == nil {
		return validation.Errors{}
	}
	return args.Get(0).(validation.Errors)
}

type PublisherMock struct {
	mock.Mock
	PublisherContract
}

func (m *PublisherMock) Publish(ctx context.Context, evt broker.Event) []error {
	args := m.Called(ctx, evt)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]error)
}

type StoreMock struct {
	mock.Mock
	StoreContract
}

func (m *StoreMock) Append(ctx context.Context, aggregateID string, evt broker.Event) error {
	args := m.Called(ctx, aggregateID, evt)
	return args.Error(0)
}
