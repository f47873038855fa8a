package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr string

	// Ledger node JSON-RPC endpoint.
	LedgerURL string

	// Verifier backend for identity-proof sessions.
	VerifierURL       string
	VerifierAPIKeyID  string
	VerifierAPISecret string

	// Verification session pacing.
	PollInterval   time.Duration
	SessionCeiling time.Duration

	// Optional infrastructure. Empty values disable the integration.
	RedisURL     string
	PostgresDSN  string
	KafkaBrokers []string
	KafkaTopic   string

	// BookCacheTTL bounds staleness of cached order book snapshots.
	BookCacheTTL time.Duration
}

// FromEnv builds a Config from environment variables with development
// defaults where safe.
func FromEnv() Config {
	cfg := Config{
		Addr:              envOr("PERMIX_ADDR", ":8080"),
		LedgerURL:         envOr("PERMIX_LEDGER_URL", "http://localhost:5005"),
		VerifierURL:       envOr("PERMIX_VERIFIER_URL", "http://localhost:9200"),
		VerifierAPIKeyID:  os.Getenv("PERMIX_VERIFIER_KEY_ID"),
		VerifierAPISecret: os.Getenv("PERMIX_VERIFIER_SECRET"),
		PollInterval:      durationOr("PERMIX_POLL_INTERVAL", 3*time.Second),
		SessionCeiling:    durationOr("PERMIX_SESSION_CEILING", 5*time.Minute),
		RedisURL:          os.Getenv("PERMIX_REDIS_URL"),
		PostgresDSN:       os.Getenv("PERMIX_POSTGRES_DSN"),
		KafkaTopic:        envOr("PERMIX_KAFKA_TOPIC", "permix.audit"),
		BookCacheTTL:      durationOr("PERMIX_BOOK_CACHE_TTL", 5*time.Second),
	}
	if brokers := os.Getenv("PERMIX_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
