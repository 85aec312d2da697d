package gateway

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the method table, usually read from gateways.yaml:
//
//	methods:
//	  credit_card:
//	    driver: credit_card
//	    timeout: 2s
//	    retries: 1
//	  paypal:
//	    driver: paypal
type Config struct {
	Methods map[string]MethodConfig `yaml:"methods"`
}

type MethodConfig struct {
	Driver       string         `yaml:"driver"`
	Timeout      time.Duration  `yaml:"timeout"`
	Retries      int            `yaml:"retries"`
	RetryBackoff time.Duration  `yaml:"retry_backoff"`
	Latency      *time.Duration `yaml:"latency"`
	Breaker      BreakerConfig  `yaml:"breaker"`
	// Credentials are handed to real network drivers; the simulated
	// drivers ignore them.
	Credentials map[string]string `yaml:"credentials"`
}

type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	OpenTimeout      time.Duration `yaml:"open_timeout"`
}

func DefaultConfig() Config {
	card := MethodConfig{
		Driver:       "credit_card",
		Timeout:      2 * time.Second,
		Retries:      1,
		RetryBackoff: 50 * time.Millisecond,
		Breaker:      BreakerConfig{FailureThreshold: 5, OpenTimeout: 10 * time.Second},
	}
	debit := card
	return Config{Methods: map[string]MethodConfig{
		"credit_card": card,
		"debit_card":  debit,
		"paypal": {
			Driver:       "paypal",
			Timeout:      2 * time.Second,
			Retries:      1,
			RetryBackoff: 50 * time.Millisecond,
			Breaker:      BreakerConfig{FailureThreshold: 5, OpenTimeout: 10 * time.Second},
		},
	}}
}

// ParseConfig decodes a YAML method table. Unknown keys are rejected so a
// typo cannot silently drop a timeout.
func ParseConfig(r io.Reader) (Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("gateway config: %w", err)
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("gateway config: %w", err)
	}
	if len(cfg.Methods) == 0 {
		return Config{}, fmt.Errorf("%w: no payment methods configured", ErrMisconfigured)
	}
	for method, mc := range cfg.Methods {
		if mc.Driver == "" {
			return Config{}, fmt.Errorf("%w: method %q has no driver", ErrMisconfigured, method)
		}
	}
	return cfg, nil
}
