// Package config builds runtime configuration from environment variables
// so main stays lean. Every tunable has a development-safe default.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures the full service configuration.
type Server struct {
	Addr     string
	LogLevel string

	// DatabaseURL enables the PostgreSQL stores when set. Empty runs the
	// service on in-memory stores.
	DatabaseURL string

	Redis RedisConfig
	Kafka KafkaConfig

	// SynergyVersion selects the synergy engine: "v1" keeps the
	// dimension-delta scorer, anything else runs the four-pillar engine.
	SynergyVersion string

	// CrewContextTTL bounds how long cached crew contexts are served.
	CrewContextTTL time.Duration

	// CertExpiryWarning is the expiring-soon window for requirements
	// without a minimum validity.
	CertExpiryWarning time.Duration

	// RankConcurrency bounds parallel scoring during batch ranking.
	RankConcurrency int

	Learning LearningConfig
	Alerting AlertingConfig
}

// RedisConfig configures the optional crew-context cache backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the outcome ingest consumer. Empty brokers
// disable ingestion.
type KafkaConfig struct {
	Brokers []string
	Group   string
	Topic   string
}

// LearningConfig carries the weight-training tunables.
type LearningConfig struct {
	MinSampleSize int
	MaxStep       float64
	Window        time.Duration
}

// AlertingConfig carries the mismatch-monitor tunables.
type AlertingConfig struct {
	Window     time.Duration
	Threshold  float64
	MinSamples int
}

// FromEnv builds the configuration from CREWFIT_* environment variables.
func FromEnv() Server {
	return Server{
		Addr:              envString("CREWFIT_ADDR", ":8080"),
		LogLevel:          envString("CREWFIT_LOG_LEVEL", "info"),
		DatabaseURL:       os.Getenv("CREWFIT_DATABASE_URL"),
		SynergyVersion:    envString("CREWFIT_SYNERGY_VERSION", "v2"),
		CrewContextTTL:    envDuration("CREWFIT_CREW_CONTEXT_TTL", 5*time.Minute),
		CertExpiryWarning: envDuration("CREWFIT_CERT_EXPIRY_WARNING", 90*24*time.Hour),
		RankConcurrency:   envInt("CREWFIT_RANK_CONCURRENCY", 8),
		Redis: RedisConfig{
			URL:          os.Getenv("CREWFIT_REDIS_URL"),
			PoolSize:     envInt("CREWFIT_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("CREWFIT_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("CREWFIT_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("CREWFIT_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("CREWFIT_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: envList("CREWFIT_KAFKA_BROKERS"),
			Group:   envString("CREWFIT_KAFKA_GROUP", "crewfit-outcomes"),
			Topic:   envString("CREWFIT_KAFKA_OUTCOME_TOPIC", "crew.outcomes"),
		},
		Learning: LearningConfig{
			MinSampleSize: envInt("CREWFIT_LEARNING_MIN_SAMPLE", 30),
			MaxStep:       envFloat("CREWFIT_LEARNING_MAX_STEP", 0.05),
			Window:        envDuration("CREWFIT_LEARNING_WINDOW", 365*24*time.Hour),
		},
		Alerting: AlertingConfig{
			Window:     envDuration("CREWFIT_ALERT_WINDOW", 24*time.Hour),
			Threshold:  envFloat("CREWFIT_ALERT_MISMATCH_THRESHOLD", 0.25),
			MinSamples: envInt("CREWFIT_ALERT_MIN_SAMPLES", 20),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
