package order

import (
	"time"

	"github.com/nskaik/order-payment-api/internal/events"
)

func ToOrderCreatedEvent(o *Order) events.OrderCreated {
	return events.OrderCreated{OrderID: o.ID, UserID: o.UserID, Total: o.Total, ItemCount: len(o.Items), At: time.Now().UTC()}
}

func ToOrderItemsReplacedEvent(o *Order) events.OrderItemsReplaced {
	return events.OrderItemsReplaced{OrderID: o.ID, UserID: o.UserID, Total: o.Total, ItemCount: len(o.Items), At: time.Now().UTC()}
}

func ToOrderConfirmedEvent(o *Order) events.OrderConfirmed {
	return events.OrderConfirmed{OrderID: o.ID, UserID: o.UserID, Total: o.Total, At: time.Now().UTC()}
}

func ToOrderCancelledEvent(o *Order) events.OrderCancelled {
	return events.OrderCancelled{OrderID: o.ID, UserID: o.UserID, At: time.Now().UTC()}
}

func ToOrderDeletedEvent(o *Order) events.OrderDeleted {
	return events.OrderDeleted{OrderID: o.ID, UserID: o.UserID, At: time.Now().UTC()}
}
