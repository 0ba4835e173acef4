package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("IDENTITY_HEADER", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("ENV", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("RATE_LIMIT_BURST", "")
	t.Setenv("SHUTDOWN_GRACE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != defaultDBPath {
		t.Errorf("expected default DB path %q, got %q", defaultDBPath, cfg.DBPath)
	}

	if cfg.ServerPort != defaultServerPort {
		t.Errorf("expected default server port %d, got %d", defaultServerPort, cfg.ServerPort)
	}

	if cfg.LogLevel != defaultLogLevel {
		t.Errorf("expected default log level %q, got %q", defaultLogLevel, cfg.LogLevel)
	}

	if cfg.IdentityHeader != defaultIdentityHeader {
		t.Errorf("expected default identity header %q, got %q", defaultIdentityHeader, cfg.IdentityHeader)
	}

	if cfg.Environment != defaultEnvironment {
		t.Errorf("expected default environment %q, got %q", defaultEnvironment, cfg.Environment)
	}

	if cfg.ShutdownGrace != defaultShutdownGrace {
		t.Errorf("expected shutdown grace %s, got %s", defaultShutdownGrace, cfg.ShutdownGrace)
	}

	if cfg.RateLimit.RequestsPerSecond != defaultRateLimitPerSec {
		t.Errorf("expected default rate limit rps %f, got %f", defaultRateLimitPerSec, cfg.RateLimit.RequestsPerSecond)
	}

	if cfg.RateLimit.Burst != defaultRateLimitBurst {
		t.Errorf("expected default rate limit burst %d, got %d", defaultRateLimitBurst, cfg.RateLimit.Burst)
	}

	if cfg.SentryDSN != "" {
		t.Errorf("expected empty Sentry DSN, got %q", cfg.SentryDSN)
	}
}

func TestLoadWithExplicitValues(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/wikimark.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("IDENTITY_HEADER", "X-Forwarded-User")
	t.Setenv("SENTRY_DSN", "dsn")
	t.Setenv("ENV", "production")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("SHUTDOWN_GRACE", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != "/tmp/wikimark.db" {
		t.Errorf("expected DB path %q, got %q", "/tmp/wikimark.db", cfg.DBPath)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("expected server port 9090, got %d", cfg.ServerPort)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}

	if cfg.IdentityHeader != "X-Forwarded-User" {
		t.Errorf("expected identity header X-Forwarded-User, got %q", cfg.IdentityHeader)
	}

	if cfg.SentryDSN != "dsn" {
		t.Errorf("expected Sentry DSN dsn, got %q", cfg.SentryDSN)
	}

	if cfg.Environment != "production" {
		t.Errorf("expected environment production, got %q", cfg.Environment)
	}

	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("expected rate limit rps 2.5, got %f", cfg.RateLimit.RequestsPerSecond)
	}

	if cfg.RateLimit.Burst != 5 {
		t.Errorf("expected rate limit burst 5, got %d", cfg.RateLimit.Burst)
	}

	if cfg.ShutdownGrace != 30*time.Second {
		t.Errorf("expected shutdown grace 30s, got %s", cfg.ShutdownGrace)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "invalid")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid port, got nil")
	}

	if !strings.Contains(err.Error(), "invalid SERVER_PORT value") {
		t.Fatalf("expected error to mention invalid SERVER_PORT value, got %v", err)
	}
}

func TestLoadInvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid rate limit, got nil")
	}

	if !strings.Contains(err.Error(), "invalid RATE_LIMIT_RPS value") {
		t.Fatalf("expected error to mention invalid RATE_LIMIT_RPS value, got %v", err)
	}
}

func TestLoadInvalidShutdownGrace(t *testing.T) {
	t.Setenv("SHUTDOWN_GRACE", "soon")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid shutdown grace, got nil")
	}

	if !strings.Contains(err.Error(), "invalid SHUTDOWN_GRACE value") {
		t.Fatalf("expected error to mention invalid SHUTDOWN_GRACE value, got %v", err)
	}
}
