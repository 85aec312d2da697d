package config

import (
	"os"
	"strings"
)

type Config struct {
	Name         string
	KafkaBrokers []string
	KafkaTopic   string
	DLQTopic     string
	GroupID      string
	AuditPath    string
	JournalPath  string
	MetricsAddr  string
	LogLevel     string
}

func Load() Config {
	name := env("CONSUMER_NAME", "consumers")
	topic := env("KAFKA_TOPIC", "order-payment.events")
	return Config{
		Name:         name,
		KafkaBrokers: splitList(env("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   topic,
		DLQTopic:     env("KAFKA_DLQ_TOPIC", topic+".dlq"),
		GroupID:      env("KAFKA_GROUP_ID", name),
		AuditPath:    env("AUDIT_PATH", "data/consumer-audit.jsonl"),
		JournalPath:  env("JOURNAL_PATH", "data/consumer-journal.jsonl"),
		MetricsAddr:  env("METRICS_ADDR", ":9101"),
		LogLevel:     env("LOG_LEVEL", "info"),
	}
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
