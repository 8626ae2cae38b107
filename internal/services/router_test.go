package services

import (
	"context"
	"testing"

	"distance-calculator/internal/adapters/cache"
	"distance-calculator/internal/adapters/route"
	"distance-calculator/internal/domain"
	"distance-calculator/internal/ports"
)

func TestRouteCachesResult(t *testing.T) {
	from := domain.Coordinates{Lat: 28.6139, Lon: 77.2090}
	to := domain.Coordinates{Lat: 15.2993, Lon: 74.1240}

	provider := route.NewMockProvider(nil)
	provider.Add(from, to, ports.RouteResult{DistanceKm: 2010.5, DurationMin: 1530})

	r := NewRouter(provider, cache.NewMemoryRouteCache())

	got, ok := r.Route(context.Background(), from, to)
	if !ok || got.DistanceKm != 2010.5 {
		t.Fatalf("first call: ok=%v got=%v", ok, got)
	}

	// Nearby coordinates within the 4-decimal rounding reuse the entry.
	nearby := domain.Coordinates{Lat: 28.61391, Lon: 77.20899}
	if _, ok := r.Route(context.Background(), nearby, to); !ok {
		t.Fatal("rounded pair should hit the cache")
	}
	if provider.Calls() != 1 {
		t.Fatalf("fetch count = %d, want 1", provider.Calls())
	}
}

func TestRouteNoRouteIsNotRetried(t *testing.T) {
	provider := route.NewMockProvider(nil)
	r := NewRouter(provider, cache.NewMemoryRouteCache())

	from := domain.Coordinates{Lat: 51.5, Lon: 0}
	to := domain.Coordinates{Lat: 40.7, Lon: -74}

	if _, ok := r.Route(context.Background(), from, to); ok {
		t.Fatal("expected no route")
	}
	if provider.Calls() != 1 {
		t.Fatalf("fetch count = %d, want 1 (no retry)", provider.Calls())
	}
}

func TestRouteCancelled(t *testing.T) {
	from := domain.Coordinates{Lat: 28.6139, Lon: 77.2090}
	to := domain.Coordinates{Lat: 15.2993, Lon: 74.1240}

	provider := route.NewMockProvider(nil)
	provider.Add(from, to, ports.RouteResult{DistanceKm: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRouter(provider, cache.NewMemoryRouteCache())
	if _, ok := r.Route(ctx, from, to); ok {
		t.Fatal("cancelled context must not resolve")
	}
}
