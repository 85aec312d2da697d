// Package recovery parks consumer messages that cannot be processed so
// the stream keeps moving and nothing is silently lost.
package recovery

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nskaik/order-payment-api/kit/broker"
	"github.com/nskaik/order-payment-api/kit/observability"
	"github.com/segmentio/kafka-go"
)

// Header keys stamped on dead-lettered messages.
const (
	HeaderReason       = "dlq_reason"
	HeaderSourceTopic  = "dlq_source_topic"
	HeaderSourceOffset = "dlq_source_offset"
)

type Service struct {
	logger *observability.Logger
	w      broker.MessageWriter
}

// NewService returns a dead-letter sink. With a nil writer messages are
// only logged.
func NewService(logger *observability.Logger, w broker.MessageWriter) *Service {
	return &Service{logger: logger, w: w}
}

func (s *Service) SendToDLQ(ctx context.Context, msg kafka.Message, reason string) error {
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "dlq", "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "key", string(msg.Key), "reason", reason)
	}
	if s.w == nil {
		return nil
	}

	headers := make([]kafka.Header, 0, len(msg.Headers)+3)
	headers = append(headers, msg.Headers...)
	headers = append(headers,
		kafka.Header{Key: HeaderReason, Value: []byte(reason)},
		kafka.Header{Key: HeaderSourceTopic, Value: []byte(msg.Topic)},
		kafka.Header{Key: HeaderSourceOffset, Value: []byte(strconv.FormatInt(msg.Offset, 10))},
	)
	out := kafka.Message{Key: msg.Key, Value: msg.Value, Headers: headers}
	if err := s.w.WriteMessages(ctx, out); err != nil {
		return fmt.Errorf("recovery: write dlq: %w", err)
	}
	return nil
}

func (s *Service) Close() error {
	if s.w == nil {
		return nil
	}
	return s.w.Close()
}
