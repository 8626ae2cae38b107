package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.GeocodeBatchSize != 25 {
		t.Errorf("batch size = %d, want 25", cfg.GeocodeBatchSize)
	}
	if cfg.GeocodeBatchDelay != 250*time.Millisecond {
		t.Errorf("batch delay = %s", cfg.GeocodeBatchDelay)
	}
	if cfg.GeocodeRetries != 2 {
		t.Errorf("retries = %d, want 2", cfg.GeocodeRetries)
	}
	if cfg.GeocodeBackoff != 300*time.Millisecond {
		t.Errorf("backoff = %s", cfg.GeocodeBackoff)
	}
	if cfg.RouteDelay != 100*time.Millisecond {
		t.Errorf("route delay = %s", cfg.RouteDelay)
	}
	if cfg.CacheBackend != "memory" {
		t.Errorf("cache backend = %q", cfg.CacheBackend)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEOCODE_BATCH_SIZE", "10")
	t.Setenv("ROUTE_DELAY", "50ms")
	t.Setenv("CACHE_BACKEND", "redis")

	cfg := Load()
	if cfg.GeocodeBatchSize != 10 {
		t.Errorf("batch size = %d, want 10", cfg.GeocodeBatchSize)
	}
	if cfg.RouteDelay != 50*time.Millisecond {
		t.Errorf("route delay = %s", cfg.RouteDelay)
	}
	if cfg.CacheBackend != "redis" {
		t.Errorf("cache backend = %q", cfg.CacheBackend)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("GEOCODE_BATCH_SIZE", "lots")
	t.Setenv("GEOCODE_BACKOFF", "soon")

	cfg := Load()
	if cfg.GeocodeBatchSize != 25 {
		t.Errorf("batch size = %d, want fallback 25", cfg.GeocodeBatchSize)
	}
	if cfg.GeocodeBackoff != 300*time.Millisecond {
		t.Errorf("backoff = %s, want fallback 300ms", cfg.GeocodeBackoff)
	}
}
