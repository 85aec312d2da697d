package handlers

import (
	"context"

	"github.com/nskaik/order-payment-api/kit/broker"
)

type JournalContract interface {
	Append(ctx context.Context, aggregateID string, evt broker.Event) error
}

// JournalEvent mirrors consumed events into a local journal keyed by
// partition key. Unkeyed events are skipped.
type JournalEvent struct {
	j JournalContract
}

func NewJournalEvent(j JournalContract) *JournalEvent {
	return &JournalEvent{j: j}
}

func (h *JournalEvent) HandleAny(ctx context.Context, evt broker.Event) error {
	if h.j == nil {
		return nil
	}
	k, ok := evt.(broker.Keyed)
	if !ok || k.PartitionKey() == "" {
		return nil
	}
	return h.j.Append(ctx, k.PartitionKey(), evt)
}
