package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nskaik/order-payment-api/kit/broker"
	"github.com/nskaik/order-payment-api/kit/money"
)

var ErrUnknownEvent = errors.New("events: unknown event")

type OrderCreated struct {
	OrderID   string       `json:"order_id"`
	UserID    string       `json:"user_id"`
	Total     money.Amount `json:"total_amount"`
	ItemCount int          `json:"item_count"`
	At        time.Time    `json:"at"`
}

func (OrderCreated) Name() string { return "order.created" }

func (e OrderCreated) PartitionKey() string { return e.OrderID }

type OrderItemsReplaced struct {
	OrderID   string       `json:"order_id"`
	UserID    string       `json:"user_id"`
	Total     money.Amount `json:"total_amount"`
	ItemCount int          `json:"item_count"`
	At        time.Time    `json:"at"`
}

func (OrderItemsReplaced) Name() string { return "order.items_replaced" }

func (e OrderItemsReplaced) PartitionKey() string { return e.OrderID }

type OrderConfirmed struct {
	OrderID string       `json:"order_id"`
	UserID  string       `json:"user_id"`
	Total   money.Amount `json:"total_amount"`
	At      time.Time    `json:"at"`
}

func (OrderConfirmed) Name() string { return "order.confirmed" }

func (e OrderConfirmed) PartitionKey() string { return e.OrderID }

type OrderCancelled struct {
	OrderID string    `json:"order_id"`
	UserID  string    `json:"user_id"`
	At      time.Time `json:"at"`
}

func (OrderCancelled) Name() string { return "order.cancelled" }

func (e OrderCancelled) PartitionKey() string { return e.OrderID }

type OrderDeleted struct {
	OrderID string    `json:"order_id"`
	UserID  string    `json:"user_id"`
	At      time.Time `json:"at"`
}

func (OrderDeleted) Name() string { return "order.deleted" }

func (e OrderDeleted) PartitionKey() string { return e.OrderID }

type PaymentSucceeded struct {
	PaymentID     string       `json:"payment_id"`
	OrderID       string       `json:"order_id"`
	UserID        string       `json:"user_id"`
	Method        string       `json:"payment_method"`
	Amount        money.Amount `json:"amount"`
	TransactionID string       `json:"transaction_id"`
	At            time.Time    `json:"at"`
}

func (PaymentSucceeded) Name() string { return "payment.succeeded" }

func (e PaymentSucceeded) PartitionKey() string { return e.OrderID }

type PaymentFailed struct {
	PaymentID string       `json:"payment_id"`
	OrderID   string       `json:"order_id"`
	UserID    string       `json:"user_id"`
	Method    string       `json:"payment_method"`
	Amount    money.Amount `json:"amount"`
	Reason    string       `json:"reason"`
	At        time.Time    `json:"at"`
}

func (PaymentFailed) Name() string { return "payment.failed" }

func (e PaymentFailed) PartitionKey() string { return e.OrderID }

// Decode rebuilds a typed event from its name and JSON payload. It is the
// broker.Decoder used by the Kafka consumer.
func Decode(name string, payload []byte) (broker.Event, error) {
	var evt broker.Event
	switch name {
	case OrderCreated{}.Name():
		evt = &OrderCreated{}
	case OrderItemsReplaced{}.Name():
		evt = &OrderItemsReplaced{}
	case OrderConfirmed{}.Name():
		evt = &OrderConfirmed{}
	case OrderCancelled{}.Name():
		evt = &OrderCancelled{}
	case OrderDeleted{}.Name():
		evt = &OrderDeleted{}
	case PaymentSucceeded{}.Name():
		evt = &PaymentSucceeded{}
	case PaymentFailed{}.Name():
		evt = &PaymentFailed{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("events: decode %s: %w", name, err)
	}
	return deref(evt), nil
}

// deref hands subscribers the value types they switch on.
func deref(evt broker.Event) broker.Event {
	switch e := evt.(type) {
	case *OrderCreated:
		return *e
	case *OrderItemsReplaced:
		return *e
	case *OrderConfirmed:
		return *e
	case *OrderCancelled:
		return *e
	case *OrderDeleted:
		return *e
	case *PaymentSucceeded:
		return *e
	case *PaymentFailed:
		return *e
	}
	return evt
}
