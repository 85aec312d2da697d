package broker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type Event interface {
	Name() string
}

// Keyed events carry the key used to partition them downstream (the order
// id for every event in this service).
type Keyed interface {
	PartitionKey() string
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) []error
}

type Handler func(ctx context.Context, evt Event) error

// Bus dispatches events synchronously, in subscription order, to handlers
// registered for the event name and then to catch-all handlers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	any      []Handler
}

func New() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

func (b *Bus) Subscribe(eventName string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], h)
}

// SubscribeAll registers h for every event published on the bus.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.any = append(b.any, h)
}

// Publish never fails the caller: handler errors and panics are logged and
// returned for inspection.
func (b *Bus) Publish(ctx context.Context, evt Event) []error {
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.handlers[evt.Name()])+len(b.any))
	hs = append(hs, b.handlers[evt.Name()]...)
	hs = append(hs, b.any...)
	b.mu.RUnlock()

	var errs []error
	for i, h := range hs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.ErrorContext(ctx, "broker handler panic", "event", evt.Name(), "handler_index", i, "panic", r)
					errs = append(errs, fmt.Errorf("broker: handler %d panicked: %v", i, r))
				}
			}()
			if err := h(ctx, evt); err != nil {
				slog.ErrorContext(ctx, "broker handler error", "event", evt.Name(), "handler_index", i, "err", err)
				errs = append(errs, err)
			}
		}()
	}
	return errs
}
