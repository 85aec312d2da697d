package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nskaik/order-payment-api/internal/gateway"
)

type Config struct {
	Name           string
	HTTPAddr       string
	DBPath         string
	RedisAddr      string
	IdempotencyTTL time.Duration
	KafkaBrokers   []string
	KafkaTopic     string
	GatewaysFile   string
	AuditPath      string
	JournalPath    string
	LogLevel       string
	Gateways       gateway.Config
}

// Load reads the environment. Redis and Kafka are optional: an empty
// REDIS_ADDR disables idempotent replay and an empty KAFKA_BROKERS keeps
// events in-process.
func Load() (Config, error) {
	cfg := Config{
		Name:         env("SERVICE_NAME", "order-payment-api"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		DBPath:       env("DB_PATH", "data/orders.db"),
		RedisAddr:    env("REDIS_ADDR", ""),
		KafkaBrokers: splitList(env("KAFKA_BROKERS", "")),
		KafkaTopic:   env("KAFKA_TOPIC", "order-payment.events"),
		GatewaysFile: env("GATEWAYS_FILE", ""),
		AuditPath:    env("AUDIT_PATH", "data/audit.jsonl"),
		JournalPath:  env("JOURNAL_PATH", "data/journal.jsonl"),
		LogLevel:     env("LOG_LEVEL", "info"),
	}

	ttl, err := time.ParseDuration(env("IDEMPOTENCY_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("config: IDEMPOTENCY_TTL must be a positive duration: %q", os.Getenv("IDEMPOTENCY_TTL"))
	}
	cfg.IdempotencyTTL = ttl

	cfg.Gateways, err = loadGateways(cfg.GatewaysFile)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadGateways(path string) (gateway.Config, error) {
	if path == "" {
		return gateway.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return gateway.Config{}, fmt.Errorf("config: open gateways file: %w", err)
	}
	defer f.Close()

	gc, err := gateway.ParseConfig(f)
	if err != nil {
		return gateway.Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return gc, nil
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
