// Package gateway holds the payment gateway contract, the reference
// gateways and the registry that maps payment methods onto them.
//
// Two interfaces split the contract. A Driver talks to one payment network
// and may fail with transport errors. A Gateway never fails: the registry
// wraps every driver in a Guarded gateway that turns timeouts, transport
// faults and an open circuit into Failed results.
package gateway

import (
	"context"
	"time"

	"github.com/nskaik/order-payment-api/kit/money"
	"github.com/nskaik/order-payment-api/kit/validation"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
)

// Result is the outcome of one charge attempt. TransactionID is set iff
// the status is successful; ErrorMessage is set iff it is failed.
type Result struct {
	Status        Status
	TransactionID string
	ErrorMessage  string
}

func Successful(transactionID string) Result {
	return Result{Status: StatusSuccessful, TransactionID: transactionID}
}

func Failed(msg string) Result {
	return Result{Status: StatusFailed, ErrorMessage: msg}
}

// Data carries the method-specific fields of a payment request. Which
// fields are required is decided by the driver's Validate.
type Data struct {
	CardNumber     string `json:"card_number,omitempty"`
	CardHolderName string `json:"card_holder_name,omitempty"`
	ExpiryMonth    int    `json:"expiry_month,omitempty"`
	ExpiryYear     int    `json:"expiry_year,omitempty"`
	CVV            string `json:"cvv,omitempty"`
	PayPalEmail    string `json:"paypal_email,omitempty"`
}

type Request struct {
	OrderID string
	Amount  money.Amount
	Data    Data
}

type Gateway interface {
	Process(ctx context.Context, req Request) Result
	Validate(data Data) validation.Errors
}

type Driver interface {
	Charge(ctx context.Context, req Request) (Result, error)
	Validate(data Data) validation.Errors
}

// wait blocks for d or until ctx is done, modelling a network round trip.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
