package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nskaik/order-payment-api/internal/audit"
	"github.com/nskaik/order-payment-api/kit/broker"
)

type AuditorContract interface {
	Record(ctx context.Context, line audit.Line) error
}

type AuditEvent struct {
	audit AuditorContract
	now   func() time.Time
}

func NewAuditEvent(a AuditorContract) *AuditEvent {
	return &AuditEvent{audit: a, now: time.Now}
}

// HandleAny records every event it is given; subscribe it with
// Bus.SubscribeAll.
func (h *AuditEvent) HandleAny(ctx context.Context, evt broker.Event) error {
	if h.audit == nil {
		return nil
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("audit: encode %s: %w", evt.Name(), err)
	}
	line := audit.Line{At: h.now().UTC(), Event: evt.Name(), Payload: payload}
	if k, ok := evt.(broker.Keyed); ok {
		line.Key = k.PartitionKey()
	}
	return h.audit.Record(ctx, line)
}
