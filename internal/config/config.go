package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the wikimark server.
type Config struct {
	DBPath         string
	ServerPort     int
	LogLevel       string
	IdentityHeader string
	SentryDSN      string
	Environment    string
	ShutdownGrace  time.Duration
	RateLimit      RateLimitConfig
}

// RateLimitConfig controls the per-client token bucket in front of the API.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

const (
	defaultDBPath          = "./data/wikimark.db"
	defaultServerPort      = 8080
	defaultLogLevel        = "info"
	defaultIdentityHeader  = "X-User-ID"
	defaultEnvironment     = "development"
	defaultShutdownGrace   = 10 * time.Second
	defaultRateLimitPerSec = 10.0
	defaultRateLimitBurst  = 20
	defaultRateLimitTTL    = 5 * time.Minute
)

// Load reads configuration values from environment variables, applying
// defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:         getEnv("DB_PATH", defaultDBPath),
		LogLevel:       getEnv("LOG_LEVEL", defaultLogLevel),
		IdentityHeader: getEnv("IDENTITY_HEADER", defaultIdentityHeader),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		Environment:    getEnv("ENV", defaultEnvironment),
		ShutdownGrace:  defaultShutdownGrace,
		RateLimit: RateLimitConfig{
			RequestsPerSecond: defaultRateLimitPerSec,
			Burst:             defaultRateLimitBurst,
			ClientTTL:         defaultRateLimitTTL,
		},
	}

	portValue := getEnv("SERVER_PORT", strconv.Itoa(defaultServerPort))
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid SERVER_PORT value: %s", portValue)
	}
	cfg.ServerPort = port

	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid RATE_LIMIT_RPS value: %s", raw)
		}
		cfg.RateLimit.RequestsPerSecond = rps
	}

	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid RATE_LIMIT_BURST value: %s", raw)
		}
		cfg.RateLimit.Burst = burst
	}

	if raw := os.Getenv("SHUTDOWN_GRACE"); raw != "" {
		grace, err := time.ParseDuration(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid SHUTDOWN_GRACE value: %s", raw)
		}
		cfg.ShutdownGrace = grace
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
