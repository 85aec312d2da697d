package payment

import (
	"context"

	"github.com/nskaik/order-payment-api/internal/gateway"
	"github.com/nskaik/order-payment-api/internal/order"
	"github.com/nskaik/order-payment-api/kit/broker"
)

// RepositoryContract define payment repository responsibility. Create
// reports false when the order was no longer confirmed at insert time.
type RepositoryContract interface {
	Create(ctx context.Context, p *Payment) (bool, error)
	Get(ctx context.Context, paymentID string) (*Payment, error)
	GetByOrder(ctx context.Context, orderID string) (*Payment, error)
	List(ctx context.Context, userID string) ([]*Payment, error)
}

// ServiceContract define payment service responsibility.
type ServiceContract interface {
	Process(ctx context.Context, userID, orderID string, req ProcessRequest) (*Outcome, error)
	Get(ctx context.Context, userID, paymentID string) (*Payment, error)
	GetByOrder(ctx context.Context, userID, orderID string) (*Payment, error)
	List(ctx context.Context, userID string) ([]*Payment, error)
}

// OrderReader loads an order on behalf of its owner.
type OrderReader interface {
	Get(ctx context.Context, userID, orderID string) (*order.Order, error)
}

type GatewayResolver interface {
	Resolve(method string) (gateway.Gateway, error)
}

// PublisherContract define publish responsibility (broker).
type PublisherContract interface {
	Publish(ctx context.Context, evt broker.Event) []error
}

// StoreContract define append responsibility (event journal).
type StoreContract interface {
	Append(ctx context.Context, aggregateID string, evt broker.Event) error
}
