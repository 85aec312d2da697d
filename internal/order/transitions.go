package order

import (
	"errors"

	"github.com/nskaik/order-payment-api/kit/db"
)

var ErrInvalidTransition = errors.New("order: invalid status transition")

var (
	ErrNotFound       = db.NewRuleError("Order not found.", db.ErrNotFound)
	ErrForbidden      = db.NewRuleError("This action is unauthorized.", db.ErrForbidden)
	ErrNotConfirmable = db.NewRuleError("Order cannot be confirmed. It is already confirmed or cancelled.", db.ErrUnprocessable, ErrInvalidTransition)
	ErrNotCancellable = db.NewRuleError("Order cannot be cancelled. It is already cancelled or has a payment.", db.ErrUnprocessable, ErrInvalidTransition)
	ErrNotEditable    = db.NewRuleError("Order items can only be replaced while the order is pending.", db.ErrUnprocessable, ErrInvalidTransition)
	ErrHasPayment     = db.NewRuleError("Order cannot be deleted because it has a payment.", db.ErrConflict)
)

// rule guards entry into a target status.
type rule struct {
	from []Status
	// noPayment blocks the transition once any payment exists.
	noPayment bool
	err       error
}

var rules = map[Status]rule{
	StatusConfirmed: {from: []Status{StatusPending}, err: ErrNotConfirmable},
	StatusCancelled: {from: []Status{StatusPending, StatusConfirmed}, noPayment: true, err: ErrNotCancellable},
}

// CanTransition reports whether o may move to status to, returning the
// rule's error when it may not.
func CanTransition(o *Order, to Status) error {
	r, ok := rules[to]
	if !ok {
		return ErrInvalidTransition
	}
	if r.noPayment && o.HasPayment() {
		return r.err
	}
	for _, from := range r.from {
		if o.Status == from {
			return nil
		}
	}
	return r.err
}

func CanEdit(o *Order) error {
	if o.Status != StatusPending {
		return ErrNotEditable
	}
	return nil
}

func CanDelete(o *Order) error {
	if o.HasPayment() {
		return ErrHasPayment
	}
	return nil
}
