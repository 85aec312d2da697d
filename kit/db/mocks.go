package db

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type ClientMock struct {
	mock.Mock
	Client
}

func (m *ClientMock) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	ret := m.Called(ctx, query, args)
	n, _ := ret.Get(0).(int64)
	return n, ret.Error(1)
}

func (m *ClientMock) QueryRow(ctx context.Context, query string, args ...any) (Row, error) {
	ret := m.Called(ctx, query, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(Row), ret.Error(1)
}

func (m *ClientMock) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	ret := m.Called(ctx, query, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(Rows), ret.Error(1)
}

// InTx runs fn against the mock itself so expectations set on Exec and
// QueryRow apply inside the transaction too.
func (m *ClientMock) InTx(ctx context.Context, fn func(ctx context.Context, tx Client) error) error {
	ret := m.Called(ctx)
	if err := ret.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

type RowMock struct {
	mock.Mock
	Row
}

func (m *RowMock) Scan(dest ...any) error {
	ret := m.Called(dest)
	return ret.Error(0)
}
