package order

import (
	"testing"

	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	var tests = []struct {
		name        string
		order       *Order
		to          Status
		expectedErr error
	}{
		{name: "confirm pending", order: &Order{Status: StatusPending}, to: StatusConfirmed},
		{name: "confirm confirmed", order: &Order{Status: StatusConfirmed}, to: StatusConfirmed, expectedErr: ErrNotConfirmable},
		{name: "confirm cancelled", order: &Order{Status: StatusCancelled}, to: StatusConfirmed, expectedErr: ErrNotConfirmable},
		{name: "cancel pending", order: &Order{Status: StatusPending}, to: StatusCancelled},
		{name: "cancel confirmed without payment", order: &Order{Status: StatusConfirmed}, to: StatusCancelled},
		{name: "cancel confirmed with payment", order: &Order{Status: StatusConfirmed, PaymentID: "p1"}, to: StatusCancelled, expectedErr: ErrNotCancellable},
		{name: "cancel cancelled", order: &Order{Status: StatusCancelled}, to: StatusCancelled, expectedErr: ErrNotCancellable},
		{name: "back to pending", order: &Order{Status: StatusConfirmed}, to: StatusPending, expectedErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CanTransition(tt.order, tt.to)
			if tt.expectedErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.expectedErr)
			require.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestTransitionErrorsAreBusinessRules(t *testing.T) {
	t.Parallel()
	require.True(t, db.IsUnprocessable(ErrNotConfirmable))
	require.True(t, db.IsUnprocessable(ErrNotCancellable))
	require.True(t, db.IsConflict(ErrHasPayment))
	require.True(t, db.IsForbidden(ErrForbidden))
	require.True(t, db.IsNotFound(ErrNotFound))
	require.Equal(t, "Order cannot be confirmed. It is already confirmed or cancelled.", ErrNotConfirmable.Error())
	require.Equal(t, "Order cannot be cancelled. It is already cancelled or has a payment.", ErrNotCancellable.Error())
}

func TestCanEditAndDelete(t *testing.T) {
	t.Parallel()
	require.NoError(t, CanEdit(&Order{Status: StatusPending}))
	require.ErrorIs(t, CanEdit(&Order{Status: StatusConfirmed}), ErrNotEditable)
	require.NoError(t, CanDelete(&Order{Status: StatusConfirmed}))
	require.ErrorIs(t, CanDelete(&Order{PaymentID: "p1"}), ErrHasPayment)
}
