package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHealthService_Check(t *testing.T) {
	var tests = []struct {
		name       string
		checks     map[string]CheckFunc
		expectedOK bool
		expected   map[string]string
	}{
		{
			name:       "all healthy",
			checks:     map[string]CheckFunc{"db": func(ctx context.Context) error { return nil }, "redis": func(ctx context.Context) error { return nil }},
			expectedOK: true,
			expected:   map[string]string{"db": "ok", "redis": "ok"},
		},
		{
			name:       "reports failure",
			checks:     map[string]CheckFunc{"db": func(ctx context.Context) error { return nil }, "redis": func(ctx context.Context) error { return errors.New("boom") }},
			expectedOK: false,
			expected:   map[string]string{"db": "ok", "redis": "boom"},
		},
		{
			name:       "nil check",
			checks:     map[string]CheckFunc{"db": nil},
			expectedOK: false,
			expected:   map[string]string{"db": "invalid check"},
		},
		{
			name:       "no checks",
			checks:     map[string]CheckFunc{},
			expectedOK: true,
			expected:   map[string]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := NewService(0, tt.checks).Check(context.Background())
			require.Equal(t, tt.expectedOK, res.OK)
			require.Equal(t, tt.expected, res.Checks)
		})
	}
}

func TestHealthService_CachesWithinTTL(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	svc := NewService(time.Minute, map[string]CheckFunc{
		"db": func(ctx context.Context) error { calls.Add(1); return nil },
	})
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	res1 := svc.Check(context.Background())
	res2 := svc.Check(context.Background())
	require.Equal(t, res1.At, res2.At)
	require.Equal(t, int32(1), calls.Load())

	now = now.Add(2 * time.Minute)
	res3 := svc.Check(context.Background())
	require.NotEqual(t, res2.At, res3.At)
	require.Equal(t, int32(2), calls.Load())
}

func TestHealthService_ChecksRunConcurrentlyWithTimeout(t *testing.T) {
	t.Parallel()
	svc := NewService(0, map[string]CheckFunc{
		"slow": func(ctx context.Context) error { <-ctx.Done(); return ctx.Err() },
		"fast": func(ctx context.Context) error { return nil },
	})
	svc.timeout = 20 * time.Millisecond

	start := time.Now()
	res := svc.Check(context.Background())
	require.Less(t, time.Since(start), time.Second)
	require.False(t, res.OK)
	require.Equal(t, context.DeadlineExceeded.Error(), res.Checks["slow"])
	require.Equal(t, "ok", res.Checks["fast"])
}
