package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry states.
const (
	StatePending = "pending"
	StateDone    = "done"
)

var ErrInFlight = errors.New("cache: request with this idempotency key is in flight")

// Entry is what the store keeps for one idempotency key.
type Entry struct {
	State  string          `json:"state"`
	Status int             `json:"status,omitempty"`
	Body   json.RawMessage `json:"body,omitempty"`
}

// Idempotency remembers the response to a request keyed by the client's
// Idempotency-Key header, so retries of the same request are replayed
// instead of re-executed.
type Idempotency struct {
	client      redis.UniversalClient
	serviceName string
	ttl         time.Duration
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func NewIdempotency(client redis.UniversalClient, serviceName string, ttl time.Duration) *Idempotency {
	return &Idempotency{client: client, serviceName: serviceName, ttl: ttl}
}

// GenerateKey scopes a client key by operation and caller so two users
// reusing a key never see each other's responses.
func (c *Idempotency) GenerateKey(operation, scope, key string) string {
	return fmt.Sprintf("%s:idem:%s:%s:%s", c.serviceName, operation, scope, key)
}

// Begin reserves key. It returns the stored entry when the key was already
// completed, ErrInFlight when another request holds it, and (nil, nil) when
// the caller now owns the key and must call Complete or Release.
func (c *Idempotency) Begin(ctx context.Context, key string) (*Entry, error) {
	pending, _ := json.Marshal(Entry{State: StatePending})
	ok, err := c.client.SetNX(ctx, key, pending, c.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: reserve %q: %w", key, err)
	}
	if ok {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; try once more
		return c.Begin(ctx, key)
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %q: %w", key, err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("cache: decode %q: %w", key, err)
	}
	if e.State != StateDone {
		return nil, ErrInFlight
	}
	return &e, nil
}

func (c *Idempotency) Complete(ctx context.Context, key string, status int, body []byte) error {
	raw, err := json.Marshal(Entry{State: StateDone, Status: status, Body: body})
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: complete %q: %w", key, err)
	}
	return nil
}

// Release drops a reservation so the request can be retried.
func (c *Idempotency) Release(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache: release %q: %w", key, err)
	}
	return nil
}

func (c *Idempotency) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
