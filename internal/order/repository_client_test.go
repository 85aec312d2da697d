package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSQLRepository_ClientFailures(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	storageErr := errors.Join(db.ErrInternal, errors.New("disk I/O error"))

	var tests = []struct {
		name string
		run  func(t *testing.T, c *db.ClientMock)
	}{
		{
			name: "transition storage error",
			run: func(t *testing.T, c *db.ClientMock) {
				c.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), storageErr).Once()
				ok, err := NewSQLRepository(c).Transition(ctx, "o1", StatusConfirmed, at)
				require.ErrorIs(t, err, db.ErrInternal)
				require.False(t, ok)
			},
		},
		{
			name: "transition to unknown status never hits the store",
			run: func(t *testing.T, c *db.ClientMock) {
				ok, err := NewSQLRepository(c).Transition(ctx, "o1", StatusPending, at)
				require.ErrorIs(t, err, ErrInvalidTransition)
				require.False(t, ok)
			},
		},
		{
			name: "delete reports guarded miss",
			run: func(t *testing.T, c *db.ClientMock) {
				c.On("Exec", mock.Anything, mock.Anything, []any{"o1"}).Return(int64(0), nil).Once()
				ok, err := NewSQLRepository(c).Delete(ctx, "o1")
				require.NoError(t, err)
				require.False(t, ok)
			},
		},
		{
			name: "get propagates not found",
			run: func(t *testing.T, c *db.ClientMock) {
				row := new(db.RowMock)
				row.On("Scan", mock.Anything).Return(db.ErrNotFound).Once()
				c.On("QueryRow", mock.Anything, mock.Anything, []any{"o1"}).Return(row, nil).Once()
				_, err := NewSQLRepository(c).Get(ctx, "o1")
				require.True(t, db.IsNotFound(err))
			},
		},
		{
			name: "replace items begin failure",
			run: func(t *testing.T, c *db.ClientMock) {
				c.On("InTx", mock.Anything).Return(storageErr).Once()
				ok, err := NewSQLRepository(c).ReplaceItems(ctx, &Order{ID: "o1", UpdatedAt: at})
				require.ErrorIs(t, err, db.ErrInternal)
				require.False(t, ok)
			},
		},
		{
			name: "replace items lost race leaves items alone",
			run: func(t *testing.T, c *db.ClientMock) {
				c.On("InTx", mock.Anything).Return(nil).Once()
				c.On("Exec", mock.Anything, qOrderEdit, mock.Anything).Return(int64(0), nil).Once()
				ok, err := NewSQLRepository(c).ReplaceItems(ctx, &Order{ID: "o1", UpdatedAt: at})
				require.NoError(t, err)
				require.False(t, ok)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := new(db.ClientMock)
			tt.run(t, c)
			c.AssertExpectations(t)
		})
	}
}
