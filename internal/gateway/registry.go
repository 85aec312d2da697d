package gateway

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nskaik/order-payment-api/kit/circuitbreaker"
	"github.com/nskaik/order-payment-api/kit/db"
)

var (
	ErrUnsupportedMethod = db.NewRuleError("The selected payment method is invalid.", db.ErrInvalid)
	ErrMisconfigured     = errors.New("gateway: misconfigured registry")
)

// Factory builds a driver from its method configuration.
type Factory func(mc MethodConfig) (Driver, error)

// Drivers is the registration table of every driver this binary ships.
// Adding a gateway means adding an entry here and a method in config.
func Drivers() map[string]Factory {
	return map[string]Factory{
		"credit_card": func(mc MethodConfig) (Driver, error) {
			return NewCreditCard(mc.latencyOr(DefaultCardLatency)), nil
		},
		"paypal": func(mc MethodConfig) (Driver, error) {
			return NewPayPal(mc.latencyOr(DefaultPayPalLatency)), nil
		},
	}
}

type Registry struct {
	gateways map[string]Gateway
}

// NewRegistry resolves every configured method to a guarded driver up
// front, so an unknown driver name fails at startup rather than on the
// first payment.
func NewRegistry(cfg Config, drivers map[string]Factory, observe Observer) (*Registry, error) {
	r := &Registry{gateways: make(map[string]Gateway, len(cfg.Methods))}
	for method, mc := range cfg.Methods {
		factory, ok := drivers[mc.Driver]
		if !ok {
			return nil, fmt.Errorf("%w: method %q uses unknown driver %q", ErrMisconfigured, method, mc.Driver)
		}
		driver, err := factory(mc)
		if err != nil {
			return nil, fmt.Errorf("%w: method %q: %v", ErrMisconfigured, method, err)
		}
		r.gateways[method] = NewGuarded(method, driver, mc.policy(), observe)
	}
	return r, nil
}

func (r *Registry) Resolve(method string) (Gateway, error) {
	g, ok := r.gateways[method]
	if !ok {
		return nil, ErrUnsupportedMethod
	}
	return g, nil
}

// Methods lists the configured payment methods in lexical order.
func (r *Registry) Methods() []string {
	out := make([]string, 0, len(r.gateways))
	for m := range r.gateways {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func (mc MethodConfig) latencyOr(def time.Duration) time.Duration {
	if mc.Latency == nil {
		return def
	}
	return *mc.Latency
}

func (mc MethodConfig) policy() Policy {
	return Policy{
		Timeout:      mc.Timeout,
		Retries:      mc.Retries,
		RetryBackoff: mc.RetryBackoff,
		Breaker: circuitbreaker.Config{
			FailureThreshold: mc.Breaker.FailureThreshold,
			OpenTimeout:      mc.Breaker.OpenTimeout,
		},
	}
}
