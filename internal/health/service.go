package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

type CheckFunc func(ctx context.Context) error

// Service runs its checks concurrently and caches the combined result for
// ttl so a busy probe cannot hammer the dependencies.
type Service struct {
	mu sync.Mutex

	checks  map[string]CheckFunc
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	nextCheckAt time.Time
	lastResult  Result
}

type Result struct {
	At     time.Time         `json:"at"`
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks"`
}

func NewService(ttl time.Duration, checks map[string]CheckFunc) *Service {
	return &Service{
		ttl:        ttl,
		timeout:    2 * time.Second,
		checks:     checks,
		now:        time.Now,
		lastResult: Result{Checks: map[string]string{}},
	}
}

func (s *Service) Check(ctx context.Context) Result {
	s.mu.Lock()
	if s.now().Before(s.nextCheckAt) {
		res := s.lastResult
		s.mu.Unlock()
		return res
	}
	s.mu.Unlock()

	res := Result{At: s.now().UTC(), OK: true, Checks: make(map[string]string, len(s.checks))}
	var (
		g     errgroup.Group
		resMu sync.Mutex
	)
	for name, fn := range s.checks {
		name, fn := name, fn
		g.Go(func() error {
			status := s.run(ctx, fn)
			resMu.Lock()
			defer resMu.Unlock()
			res.Checks[name] = status
			if status != "ok" {
				res.OK = false
			}
			return nil
		})
	}
	_ = g.Wait()

	s.mu.Lock()
	s.lastResult = res
	s.nextCheckAt = s.now().Add(s.ttl)
	s.mu.Unlock()

	return res
}

func (s *Service) run(ctx context.Context, fn CheckFunc) string {
	if fn == nil {
		return "invalid check"
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
