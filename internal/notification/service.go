// Package notification tells order owners about outcomes that concern
// them. Delivery is a structured log line.
package notification

import (
	"context"

	"github.com/nskaik/order-payment-api/kit/observability"
)

type Service struct {
	logger *observability.Logger
}

func NewService(logger *observability.Logger) *Service {
	return &Service{logger: logger}
}

func (s *Service) Notify(ctx context.Context, userID string, msg string) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, "notify", "user_id", userID, "msg", msg)
}
