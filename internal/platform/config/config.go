package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process-level configuration. Values come from the
// environment so main stays lean.
type Config struct {
	Addr string

	// DatabaseURL points at the relational store holding projects,
	// memberships and the event error log.
	DatabaseURL string

	Redis RedisConfig

	TimeSeries TimeSeriesConfig
}

// RedisConfig configures the report cache store. An empty URL disables
// caching (reports are always recomputed).
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// TimeSeriesConfig configures the columnar event store client.
type TimeSeriesConfig struct {
	URL      string
	Database string
	Timeout  time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:        envOr("PULSE_ADDR", ":8080"),
		DatabaseURL: envOr("PULSE_DATABASE_URL", "postgres://localhost:5432/pulse?sslmode=disable"),
		Redis: RedisConfig{
			URL:          os.Getenv("PULSE_REDIS_URL"),
			PoolSize:     envIntOr("PULSE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("PULSE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("PULSE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("PULSE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("PULSE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		TimeSeries: TimeSeriesConfig{
			URL:      envOr("PULSE_TIMESERIES_URL", "http://localhost:8123"),
			Database: envOr("PULSE_TIMESERIES_DB", "pulse"),
			Timeout:  envDurationOr("PULSE_TIMESERIES_TIMEOUT", 30*time.Second),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
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
