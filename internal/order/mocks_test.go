package order

import (
	"context"
	"time"

	"github.com/nskaik/order-payment-api/kit/broker"
	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/stretchr/testify/mock"
)

type RepositoryMock struct {
	mock.Mock
	RepositoryContract
}

func (m *RepositoryMock) Create(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *RepositoryMock) Get(ctx context.Context, orderID string) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *RepositoryMock) List(ctx context.Context, userID string, status Status) ([]*Order, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *RepositoryMock) ReplaceItems(ctx context.Context, o *Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *RepositoryMock) Transition(ctx context.Context, orderID string, to Status, at time.Time) (bool, error) {
	args := m.Called(ctx, orderID, to, at)
	return args.Bool(0), args.Error(1)
}

func (m *RepositoryMock) Delete(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
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

func (m *StoreMock) Load(ctx context.Context, aggregateID string) []db.Record {
	args := m.Called(ctx, aggregateID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]db.Record)
}
