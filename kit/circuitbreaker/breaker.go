// Package circuitbreaker guards calls to a flaky dependency: after
// FailureThreshold consecutive failures it rejects calls for OpenTimeout,
// then lets a single probe through before closing again.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrOpen = errors.New("circuit open")

type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

type Config struct {
	FailureThreshold int
	SuccessThreshold int
	OpenTimeout      time.Duration
	// IsFailure decides which errors count against the breaker. Defaults
	// to timeouts only.
	IsFailure func(error) bool
}

type Breaker struct {
	cfg Config
	now func() time.Time

	mu           sync.Mutex
	state        State
	failures     int
	successes    int
	openedAt     time.Time
	halfInFlight bool
}

func New(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 2 * time.Second
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool {
			return errors.Is(err, context.DeadlineExceeded)
		}
	}
	return &Breaker{cfg: cfg, now: time.Now, state: Closed}
}

// Do runs fn unless the breaker is open.
func (b *Breaker) Do(fn func() error) error {
	if err := b.beforeCall(); err != nil {
		return err
	}
	err := fn()
	b.afterCall(err)
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) beforeCall() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		return nil
	case Open:
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrOpen
		}
		b.state = HalfOpen
		b.successes = 0
		b.halfInFlight = false
		fallthrough
	case HalfOpen:
		if b.halfInFlight {
			return ErrOpen
		}
		b.halfInFlight = true
		return nil
	default:
		return ErrOpen
	}
}

func (b *Breaker) afterCall(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == HalfOpen {
		b.halfInFlight = false
	}

	if err == nil || !b.cfg.IsFailure(err) {
		switch b.state {
		case Closed:
			b.failures = 0
		case HalfOpen:
			b.successes++
			if b.successes >= b.cfg.SuccessThreshold {
				b.state = Closed
				b.failures = 0
				b.successes = 0
			}
		}
		return
	}

	switch b.state {
	case Closed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case HalfOpen:
		b.trip()
	}
}

func (b *Breaker) trip() {
	b.state = Open
	b.openedAt = b.now()
	b.failures = 0
	b.successes = 0
	b.halfInFlight = false
}
