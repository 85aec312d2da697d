package payment

import (
	"time"

	"github.com/nskaik/order-payment-api/kit/money"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
)

// Payment is immutable once stored. Amount is the order total at the
// moment of processing.
type Payment struct {
	ID            string
	OrderID       string
	UserID        string
	Method        string
	Amount        money.Amount
	Status        Status
	TransactionID string
	CreatedAt     time.Time
}

// Outcome pairs the stored payment with the gateway's message, which is
// shown to the caller but never persisted.
type Outcome struct {
	Payment *Payment
	Message string
}
