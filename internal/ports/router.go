package ports

import (
	"context"

	"distance-calculator/internal/domain"
)

// Driving distance and travel duration between two coordinates.
type RouteResult struct {
	DistanceKm  float64
	DurationMin float64
}

// Contract for retrieving a driving route between two coordinates.
type RouteProvider interface {
	// FetchRoute returns the best driving route between the pair. A provider
	// that finds no drivable connection returns ErrNoRoute.
	FetchRoute(ctx context.Context, from, to domain.Coordinates) (RouteResult, error)
}

// RouteCache memoizes route results by rounded coordinate-pair key
// (domain.PairKey). Entries are never evicted.
type RouteCache interface {
	Get(ctx context.Context, key string) (RouteResult, bool, error)
	Put(ctx context.Context, key string, r RouteResult) error
}
