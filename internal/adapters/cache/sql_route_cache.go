package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"distance-calculator/internal/platform/obs"
	"distance-calculator/internal/ports"
)

// SQLRouteCache is the postgres variant of the route cache.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch a cached route result for one coordinate-pair key.
func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return ports.RouteResult{}, false, nil
	}

	q := `
	SELECT distance_km, duration_min
	FROM route_cache
	WHERE pair_key = $1;
	`

	var km, minutes float64
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&km, &minutes)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return ports.RouteResult{DistanceKm: km, DurationMin: minutes}, true, nil
}

// Store one route result.
func (s *SQLRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: empty pair key")
	}

	q := `
	INSERT INTO route_cache (pair_key, distance_km, duration_min)
	VALUES ($1, $2, $3)
	ON CONFLICT (pair_key) DO UPDATE
	SET distance_km = EXCLUDED.distance_km,
		duration_min = EXCLUDED.duration_min;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, r.DistanceKm, r.DurationMin); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}
	return nil
}
