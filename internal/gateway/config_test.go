package gateway

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	var tests = []struct {
		name        string
		input       string
		expectedErr bool
		check       func(t *testing.T, cfg Config)
	}{
		{
			name: "full method table",
			input: `
methods:
  credit_card:
    driver: credit_card
    timeout: 2s
    retries: 2
    retry_backoff: 25ms
    latency: 0s
    breaker:
      failure_threshold: 3
      open_timeout: 30s
  wallet:
    driver: paypal
    credentials:
      client_id: abc
`,
			check: func(t *testing.T, cfg Config) {
				cc := cfg.Methods["credit_card"]
				require.Equal(t, "credit_card", cc.Driver)
				require.Equal(t, 2*time.Second, cc.Timeout)
				require.Equal(t, 2, cc.Retries)
				require.Equal(t, 25*time.Millisecond, cc.RetryBackoff)
				require.NotNil(t, cc.Latency)
				require.Equal(t, time.Duration(0), *cc.Latency)
				require.Equal(t, 3, cc.Breaker.FailureThreshold)
				require.Equal(t, 30*time.Second, cc.Breaker.OpenTimeout)

				w := cfg.Methods["wallet"]
				require.Equal(t, "paypal", w.Driver)
				require.Nil(t, w.Latency)
				require.Equal(t, "abc", w.Credentials["client_id"])
			},
		},
		{name: "empty document", input: "", expectedErr: true},
		{name: "no methods", input: "methods: {}\n", expectedErr: true},
		{name: "missing driver", input: "methods:\n  paypal:\n    timeout: 1s\n", expectedErr: true},
		{name: "unknown key", input: "methods:\n  paypal:\n    driver: paypal\n    timout: 1s\n", expectedErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := ParseConfig(strings.NewReader(tt.input))
			if tt.expectedErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.Equal(t, "credit_card", cfg.Methods["debit_card"].Driver)
	require.Equal(t, "paypal", cfg.Methods["paypal"].Driver)
	require.Positive(t, cfg.Methods["credit_card"].Timeout)
}
