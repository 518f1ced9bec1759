package config

import (
	"testing"
	"time"
)

// TestLoad_Defaults verifies defaults apply with an empty environment.
func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.CacheBackend != "memory" {
		t.Errorf("expected default cache backend memory, got %s", cfg.CacheBackend)
	}
	if cfg.CacheMaxSize != 4096 {
		t.Errorf("expected default cache maxsize 4096, got %d", cfg.CacheMaxSize)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("expected default cache TTL 24h, got %v", cfg.CacheTTL)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("expected default request timeout 2s, got %v", cfg.RequestTimeout)
	}
}

// TestLoad_FromEnvironment verifies environment values override defaults.
func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("IPMETA_TOKEN", "secret")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_MAXSIZE", "128")
	t.Setenv("CACHE_TTL", "90m")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_PRETTY", "false")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.AccessToken != "secret" {
		t.Errorf("expected token from env, got %q", cfg.AccessToken)
	}
	if cfg.CacheBackend != "redis" {
		t.Errorf("expected cache backend redis, got %s", cfg.CacheBackend)
	}
	if cfg.CacheMaxSize != 128 {
		t.Errorf("expected cache maxsize 128, got %d", cfg.CacheMaxSize)
	}
	if cfg.CacheTTL != 90*time.Minute {
		t.Errorf("expected cache TTL 90m, got %v", cfg.CacheTTL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected request timeout 5s, got %v", cfg.RequestTimeout)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.RedisDB)
	}
	if cfg.LogPretty {
		t.Error("expected pretty logging disabled")
	}
}

// TestLoad_InvalidValuesFallBack verifies malformed values keep defaults.
func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_MAXSIZE", "lots")
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("LOG_PRETTY", "kinda")

	cfg := Load()

	if cfg.CacheMaxSize != 4096 {
		t.Errorf("expected default maxsize on bad value, got %d", cfg.CacheMaxSize)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("expected default TTL on bad value, got %v", cfg.CacheTTL)
	}
	if !cfg.LogPretty {
		t.Error("expected default pretty logging on bad value")
	}
}
