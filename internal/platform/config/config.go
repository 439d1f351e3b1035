// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr string
	// OrgAddress is the organization's own pre-registered ledger address.
	OrgAddress string
	// PostgresDSN selects durable stores; empty keeps everything in memory.
	PostgresDSN string
	// RedisURL enables the oracle facts cache; empty disables it.
	RedisURL string
	// KafkaBrokers enables the audit event publisher; empty keeps audit in
	// structured logs only.
	KafkaBrokers []string
	KafkaTopic   string
	// OracleTimeout bounds each verifier oracle HTTP call.
	OracleTimeout time.Duration
	// AdminToken guards the admin HTTP surface in addition to the external
	// authorization gate.
	AdminToken string
}

// FromEnv reads configuration from CUSTOS_* environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:          getenv("CUSTOS_ADDR", ":8080"),
		OrgAddress:    os.Getenv("CUSTOS_ORG_ADDRESS"),
		PostgresDSN:   os.Getenv("CUSTOS_POSTGRES_DSN"),
		RedisURL:      os.Getenv("CUSTOS_REDIS_URL"),
		KafkaTopic:    getenv("CUSTOS_KAFKA_TOPIC", "custos.audit"),
		OracleTimeout: getDuration("CUSTOS_ORACLE_TIMEOUT", 10*time.Second),
		AdminToken:    os.Getenv("CUSTOS_ADMIN_TOKEN"),
	}
	if brokers := os.Getenv("CUSTOS_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
