package order

import (
	"time"

	"github.com/nskaik/order-payment-api/kit/money"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Item struct {
	ID          string
	OrderID     string
	ProductName string
	Quantity    int
	UnitPrice   money.Amount
	Subtotal    money.Amount
}

// Order is the aggregate root. Total is derived from Items and is only
// ever set by setItems.
type Order struct {
	ID        string
	UserID    string
	Status    Status
	Total     money.Amount
	Items     []Item
	PaymentID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Order) HasPayment() bool {
	return o.PaymentID != ""
}

func (o *Order) OwnedBy(userID string) bool {
	return o.UserID == userID
}

// setItems replaces the item set and recomputes every subtotal and the
// order total.
func (o *Order) setItems(items []Item) {
	subtotals := make([]money.Amount, len(items))
	for i := range items {
		items[i].OrderID = o.ID
		items[i].Subtotal = items[i].UnitPrice.Mul(items[i].Quantity)
		subtotals[i] = items[i].Subtotal
	}
	o.Items = items
	o.Total = money.Sum(subtotals...)
}
