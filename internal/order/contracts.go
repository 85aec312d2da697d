package order

import (
	"context"
	"time"

	"github.com/nskaik/order-payment-api/kit/broker"
	"github.com/nskaik/order-payment-api/kit/db"
)

// RepositoryContract define order repository responsibility. Guarded writes
// report false when their precondition no longer held at write time.
type RepositoryContract interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, userID string, status Status) ([]*Order, error)
	ReplaceItems(ctx context.Context, o *Order) (bool, error)
	Transition(ctx context.Context, orderID string, to Status, at time.Time) (bool, error)
	Delete(ctx context.Context, orderID string) (bool, error)
}

// ServiceContract define order service responsibility.
type ServiceContract interface {
	Create(ctx context.Context, userID string, items []ItemInput) (*Order, error)
	Get(ctx context.Context, userID, orderID string) (*Order, error)
	List(ctx context.Context, userID string, status Status) ([]*Order, error)
	ReplaceItems(ctx context.Context, userID, orderID string, items []ItemInput) (*Order, error)
	Delete(ctx context.Context, userID, orderID string) error
	Confirm(ctx context.Context, userID, orderID string) (*Order, error)
	Cancel(ctx context.Context, userID, orderID string) (*Order, error)
	Events(ctx context.Context, userID, orderID string) ([]db.Record, error)
}

// PublisherContract define publish responsibility (broker).
type PublisherContract interface {
	Publish(ctx context.Context, evt broker.Event) []error
}

// StoreContract define append/load responsibility (event journal).
type StoreContract interface {
	Append(ctx context.Context, aggregateID string, evt broker.Event) error
	Load(ctx context.Context, aggregateID string) []db.Record
}
