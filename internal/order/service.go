package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nskaik/order-payment-api/kit/broker"
	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/nskaik/order-payment-api/kit/observability"
)

type Service struct {
	bus        PublisherContract
	store      StoreContract
	repository RepositoryContract
	metrics    *observability.Metrics
	now        func() time.Time
}

func NewService(bus PublisherContract, store StoreContract, repo RepositoryContract, metrics *observability.Metrics) *Service {
	return &Service{
		bus:        bus,
		store:      store,
		repository: repo,
		metrics:    metrics,
		now:        time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID string, inputs []ItemInput) (*Order, error) {
	items, err := ValidateItems(inputs)
	if err != nil {
		slog.InfoContext(ctx, "create order rejected", "layer", "service", "component", "order", "method", "Create", "user_id", userID, "err", err)
		return nil, err
	}

	now := s.now().UTC()
	o := &Order{ID: uuid.NewString(), UserID: userID, Status: StatusPending, CreatedAt: now, UpdatedAt: now}
	o.setItems(items)

	if err := s.repository.Create(ctx, o); err != nil {
		slog.ErrorContext(ctx, "create order", "layer", "service", "component", "order", "method", "Create", "order_id", o.ID, "user_id", userID, "err", err)
		return nil, err
	}

	s.emit(ctx, o.ID, ToOrderCreatedEvent(o))
	if s.metrics != nil {
		s.metrics.OrdersCreatedAdd(1)
	}
	return o, nil
}

// Get loads an order for its owner. Existence is checked before ownership.
func (s *Service) Get(ctx context.Context, userID, orderID string) (*Order, error) {
	o, err := s.repository.Get(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		slog.ErrorContext(ctx, "get order", "layer", "service", "component", "order", "method", "Get", "order_id", orderID, "err", err)
		return nil, err
	}
	if !o.OwnedBy(userID) {
		slog.InfoContext(ctx, "get order forbidden", "layer", "service", "component", "order", "method", "Get", "order_id", orderID, "user_id", userID)
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, userID string, status Status) ([]*Order, error) {
	status, err := ParseStatus(string(status))
	if err != nil {
		return nil, err
	}
	orders, err := s.repository.List(ctx, userID, status)
	if err != nil {
		slog.ErrorContext(ctx, "list orders", "layer", "service", "component", "order", "method", "List", "user_id", userID, "err", err)
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *Service) ReplaceItems(ctx context.Context, userID, orderID string, inputs []ItemInput) (*Order, error) {
	o, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := ValidateItems(inputs)
	if err != nil {
		return nil, err
	}
	if err := CanEdit(o); err != nil {
		return nil, err
	}

	o.setItems(items)
	o.UpdatedAt = s.now().UTC()
	applied, err := s.repository.ReplaceItems(ctx, o)
	if err != nil {
		slog.ErrorContext(ctx, "replace items", "layer", "service", "component", "order", "method", "ReplaceItems", "order_id", orderID, "err", err)
		return nil, err
	}
	if !applied {
		return nil, ErrNotEditable
	}

	s.emit(ctx, o.ID, ToOrderItemsReplacedEvent(o))
	return o, nil
}

func (s *Service) Delete(ctx context.Context, userID, orderID string) error {
	o, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if err := CanDelete(o); err != nil {
		return err
	}

	deleted, err := s.repository.Delete(ctx, orderID)
	if err != nil {
		slog.ErrorContext(ctx, "delete order", "layer", "service", "component", "order", "method", "Delete", "order_id", orderID, "err", err)
		return err
	}
	if !deleted {
		return ErrHasPayment
	}

	s.emit(ctx, o.ID, ToOrderDeletedEvent(o))
	return nil
}

func (s *Service) Confirm(ctx context.Context, userID, orderID string) (*Order, error) {
	o, err := s.transition(ctx, userID, orderID, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, o.ID, ToOrderConfirmedEvent(o))
	return o, nil
}

func (s *Service) Cancel(ctx context.Context, userID, orderID string) (*Order, error) {
	o, err := s.transition(ctx, userID, orderID, StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, o.ID, ToOrderCancelledEvent(o))
	return o, nil
}

// Events returns the journaled history of an order. The order must still
// exist and belong to the caller.
func (s *Service) Events(ctx context.Context, userID, orderID string) ([]db.Record, error) {
	if _, err := s.Get(ctx, userID, orderID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return []db.Record{}, nil
	}
	return s.store.Load(ctx, orderID), nil
}

func (s *Service) transition(ctx context.Context, userID, orderID string, to Status) (*Order, error) {
	o, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := CanTransition(o, to); err != nil {
		slog.InfoContext(ctx, "transition rejected", "layer", "service", "component", "order", "method", "transition", "order_id", orderID, "from", o.Status, "to", to)
		return nil, err
	}

	at := s.now().UTC()
	applied, err := s.repository.Transition(ctx, orderID, to, at)
	if err != nil {
		slog.ErrorContext(ctx, "transition order", "layer", "service", "component", "order", "method", "transition", "order_id", orderID, "to", to, "err", err)
		return nil, err
	}
	if !applied {
		// Lost a race with another transition or a payment insert.
		return nil, rules[to].err
	}

	o.Status = to
	o.UpdatedAt = at
	if s.metrics != nil {
		s.metrics.OrderTransitioned(string(to))
	}
	return o, nil
}

func (s *Service) emit(ctx context.Context, orderID string, evt broker.Event) {
	if s.store != nil {
		if err := s.store.Append(ctx, orderID, evt); err != nil {
			slog.ErrorContext(ctx, "journal append", "layer", "service", "component", "order", "order_id", orderID, "event", evt.Name(), "err", err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(ctx, evt)
	}
}
