package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nskaik/order-payment-api/internal/order"
	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/nskaik/order-payment-api/kit/observability"
	"github.com/nskaik/order-payment-api/kit/validation"
)

type Service struct {
	bus        PublisherContract
	store      StoreContract
	repository RepositoryContract
	orders     OrderReader
	gateways   GatewayResolver
	metrics    *observability.Metrics
	now        func() time.Time
}

func NewService(bus PublisherContract, store StoreContract, repo RepositoryContract, orders OrderReader, gateways GatewayResolver, metrics *observability.Metrics) *Service {
	return &Service{
		bus:        bus,
		store:      store,
		repository: repo,
		orders:     orders,
		gateways:   gateways,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Process charges a confirmed order exactly once. A declined charge is a
// normal outcome: the failed payment is stored and returned without error.
func (s *Service) Process(ctx context.Context, userID, orderID string, req ProcessRequest) (*Outcome, error) {
	o, err := s.orders.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != order.StatusConfirmed {
		slog.InfoContext(ctx, "payment rejected", "layer", "service", "component", "payment", "method", "Process", "order_id", orderID, "status", o.Status)
		return nil, ErrOrderNotConfirmed
	}
	if o.HasPayment() {
		return nil, ErrDuplicatePayment
	}

	if err := ValidateMethod(req); err != nil {
		return nil, err
	}
	gw, err := s.gateways.Resolve(req.PaymentMethod)
	if err != nil {
		return nil, validation.Field("payment_method", err.Error(), err)
	}
	if err := gw.Validate(req.Data).Err(); err != nil {
		return nil, err
	}

	// From here on the caller going away must not decide the outcome: the
	// charge runs to completion, bounded by the gateway's own timeout, and
	// its result is stored.
	detached := context.WithoutCancel(ctx)
	res := gw.Process(detached, ToGatewayRequest(o, req))

	p := &Payment{
		ID:            uuid.NewString(),
		OrderID:       o.ID,
		UserID:        o.UserID,
		Method:        req.PaymentMethod,
		Amount:        o.Total,
		Status:        Status(res.Status),
		TransactionID: res.TransactionID,
		CreatedAt:     s.now().UTC(),
	}
	created, err := s.repository.Create(detached, p)
	if err != nil {
		if db.IsConflict(err) {
			slog.InfoContext(ctx, "duplicate payment", "layer", "service", "component", "payment", "method", "Process", "order_id", orderID)
			return nil, ErrDuplicatePayment
		}
		slog.ErrorContext(ctx, "store payment", "layer", "service", "component", "payment", "method", "Process", "order_id", orderID, "payment_id", p.ID, "status", p.Status, "transaction_id", p.TransactionID, "err", err)
		return nil, err
	}
	if !created {
		return nil, ErrOrderNotConfirmed
	}

	if evt := ToPaymentEvent(p, res.ErrorMessage); evt != nil {
		if s.store != nil {
			if err := s.store.Append(detached, o.ID, evt); err != nil {
				slog.ErrorContext(ctx, "journal append", "layer", "service", "component", "payment", "order_id", o.ID, "event", evt.Name(), "err", err)
			}
		}
		if s.bus != nil {
			s.bus.Publish(detached, evt)
		}
	}
	if s.metrics != nil {
		s.metrics.PaymentProcessed(p.Method, string(p.Status))
	}
	return &Outcome{Payment: p, Message: res.ErrorMessage}, nil
}

func (s *Service) Get(ctx context.Context, userID, paymentID string) (*Payment, error) {
	p, err := s.repository.Get(ctx, paymentID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		slog.ErrorContext(ctx, "get payment", "layer", "service", "component", "payment", "method", "Get", "payment_id", paymentID, "err", err)
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) GetByOrder(ctx context.Context, userID, orderID string) (*Payment, error) {
	if _, err := s.orders.Get(ctx, userID, orderID); err != nil {
		return nil, err
	}
	p, err := s.repository.GetByOrder(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		slog.ErrorContext(ctx, "get order payment", "layer", "service", "component", "payment", "method", "GetByOrder", "order_id", orderID, "err", err)
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Payment, error) {
	payments, err := s.repository.List(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "list payments", "layer", "service", "component", "payment", "method", "List", "user_id", userID, "err", err)
		return nil, err
	}
	return payments, nil
}
