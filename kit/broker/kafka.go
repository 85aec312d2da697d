package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Envelope is the wire format of an event on the Kafka topic.
type Envelope struct {
	Name    string          `json:"name"`
	Key     string          `json:"key"`
	Payload json.RawMessage `json:"payload"`
	At      time.Time       `json:"at"`
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// NewKafkaWriter returns a writer that hashes on the message key so all
// events of one order land on the same partition, in order.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           DefaultWriteTimeout,
		MaxAttempts:            3,
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6,
	})
}

// DefaultWriteTimeout bounds a single forwarded write. Handle runs inside
// bus.Publish on the request path, after the state change has committed.
const DefaultWriteTimeout = 2 * time.Second

// KafkaForwarder copies bus events onto a Kafka topic. Subscribe Handle on
// the bus with SubscribeAll.
type KafkaForwarder struct {
	w       MessageWriter
	now     func() time.Time
	timeout time.Duration
}

func NewKafkaForwarder(w MessageWriter) *KafkaForwarder {
	return &KafkaForwarder{w: w, now: time.Now, timeout: DefaultWriteTimeout}
}

func (f *KafkaForwarder) WithTimeout(d time.Duration) *KafkaForwarder {
	if d > 0 {
		f.timeout = d
	}
	return f
}

func (f *KafkaForwarder) Handle(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("kafka: marshal %s: %w", evt.Name(), err)
	}
	env := Envelope{Name: evt.Name(), Payload: payload, At: f.now().UTC()}
	if k, ok := evt.(Keyed); ok {
		env.Key = k.PartitionKey()
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("kafka: marshal envelope %s: %w", evt.Name(), err)
	}
	msg := kafka.Message{
		Key:     []byte(env.Key),
		Value:   value,
		Headers: []kafka.Header{{Key: "event", Value: []byte(env.Name)}},
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if err := f.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", evt.Name(), err)
	}
	return nil
}

func (f *KafkaForwarder) Close() error {
	return f.w.Close()
}

// Decoder turns an envelope back into a typed event.
type Decoder func(name string, payload []byte) (Event, error)

// DeadLetterer takes messages that could not be decoded or handled.
type DeadLetterer interface {
	SendToDLQ(ctx context.Context, msg kafka.Message, reason string) error
}

// KafkaSource reads envelopes from Kafka and republishes them on a local
// publisher.
type KafkaSource struct {
	r      MessageReader
	decode Decoder
	pub    Publisher
	dlq    DeadLetterer
}

func NewKafkaSource(r MessageReader, decode Decoder, pub Publisher) *KafkaSource {
	return &KafkaSource{r: r, decode: decode, pub: pub}
}

// WithDeadLetter routes poison messages to d before they are skipped.
func (s *KafkaSource) WithDeadLetter(d DeadLetterer) *KafkaSource {
	s.dlq = d
	return s
}

// Run consumes until ctx is cancelled. Malformed messages and handler
// failures are logged, dead-lettered when configured, and skipped.
func (s *KafkaSource) Run(ctx context.Context) error {
	for {
		if err := s.Next(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return nil
			}
			slog.ErrorContext(ctx, "kafka consume", "layer", "broker", "component", "kafka", "err", err)
		}
	}
}

// Next handles exactly one message.
func (s *KafkaSource) Next(ctx context.Context) error {
	m, err := s.r.ReadMessage(ctx)
	if err != nil {
		return err
	}
	var env Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return s.deadLetter(ctx, m, fmt.Errorf("kafka: decode envelope at offset %d: %w", m.Offset, err))
	}
	evt, err := s.decode(env.Name, env.Payload)
	if err != nil {
		return s.deadLetter(ctx, m, fmt.Errorf("kafka: decode %s at offset %d: %w", env.Name, m.Offset, err))
	}
	if errs := s.pub.Publish(ctx, evt); len(errs) > 0 {
		return s.deadLetter(ctx, m, fmt.Errorf("kafka: handle %s at offset %d: %w", env.Name, m.Offset, errors.Join(errs...)))
	}
	return nil
}

func (s *KafkaSource) deadLetter(ctx context.Context, m kafka.Message, cause error) error {
	if s.dlq == nil {
		return cause
	}
	if err := s.dlq.SendToDLQ(ctx, m, cause.Error()); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (s *KafkaSource) Close() error {
	return s.r.Close()
}
