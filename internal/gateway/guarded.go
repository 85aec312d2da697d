package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nskaik/order-payment-api/kit/circuitbreaker"
	"github.com/nskaik/order-payment-api/kit/validation"
)

// ErrUnavailable marks a transport fault raised before the charge reached
// the payment network. Only these are retried: a timed-out charge may have
// gone through, so it is never repeated.
var ErrUnavailable = errors.New("gateway unavailable")

const (
	MsgTimeout     = "Payment gateway timed out. Please try again."
	MsgUnavailable = "Payment gateway is temporarily unavailable. Please try again later."
	MsgFault       = "Payment processing failed. Please try again."
	MsgNoReference = "Payment gateway returned no transaction reference."
)

type Policy struct {
	Timeout      time.Duration
	Retries      int
	RetryBackoff time.Duration
	Breaker      circuitbreaker.Config
}

// Observer receives one callback per Process call.
type Observer func(method string, status Status, d time.Duration)

// Guarded adapts a Driver to the Gateway contract.
type Guarded struct {
	method  string
	driver  Driver
	policy  Policy
	breaker *circuitbreaker.Breaker
	observe Observer
}

func NewGuarded(method string, driver Driver, policy Policy, observe Observer) *Guarded {
	if policy.Timeout <= 0 {
		policy.Timeout = 5 * time.Second
	}
	if policy.Retries < 0 {
		policy.Retries = 0
	}
	if policy.Breaker.IsFailure == nil {
		policy.Breaker.IsFailure = func(err error) bool {
			return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrUnavailable)
		}
	}
	return &Guarded{
		method:  method,
		driver:  driver,
		policy:  policy,
		breaker: circuitbreaker.New(policy.Breaker),
		observe: observe,
	}
}

func (g *Guarded) Validate(data Data) validation.Errors {
	return g.driver.Validate(data)
}

func (g *Guarded) Process(ctx context.Context, req Request) Result {
	start := time.Now()
	res := g.process(ctx, req)
	if g.observe != nil {
		g.observe(g.method, res.Status, time.Since(start))
	}
	return res
}

func (g *Guarded) process(ctx context.Context, req Request) Result {
	var lastErr error
	for attempt := 0; attempt <= g.policy.Retries; attempt++ {
		if attempt > 0 {
			if err := wait(ctx, g.policy.RetryBackoff); err != nil {
				lastErr = err
				break
			}
		}

		res, err := g.attempt(ctx, req)
		if err == nil {
			return conform(res)
		}
		lastErr = err
		slog.WarnContext(ctx, "gateway charge error", "layer", "gateway", "component", g.method, "order_id", req.OrderID, "attempt", attempt+1, "err", err)
		if !errors.Is(err, ErrUnavailable) || ctx.Err() != nil {
			break
		}
	}
	return faultResult(lastErr)
}

func (g *Guarded) attempt(ctx context.Context, req Request) (res Result, err error) {
	err = g.breaker.Do(func() (callErr error) {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("gateway panic: %v", r)
			}
		}()
		callCtx, cancel := context.WithTimeout(ctx, g.policy.Timeout)
		defer cancel()
		res, callErr = g.driver.Charge(callCtx, req)
		return callErr
	})
	return res, err
}

// conform enforces the Result invariants on whatever the driver returned.
func conform(res Result) Result {
	switch res.Status {
	case StatusSuccessful:
		if res.TransactionID == "" {
			return Failed(MsgNoReference)
		}
		res.ErrorMessage = ""
	case StatusFailed:
		if res.ErrorMessage == "" {
			res.ErrorMessage = MsgFault
		}
		res.TransactionID = ""
	case StatusPending:
		res.TransactionID = ""
		res.ErrorMessage = ""
	default:
		return Failed(MsgFault)
	}
	return res
}

func faultResult(err error) Result {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Failed(MsgTimeout)
	case errors.Is(err, circuitbreaker.ErrOpen), errors.Is(err, ErrUnavailable):
		return Failed(MsgUnavailable)
	default:
		return Failed(MsgFault)
	}
}
