package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"distance-calculator/internal/ports"
)

// SQLite backed route cache keyed by rounded coordinate-pair key.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// Fetch a cached route result for one coordinate-pair key.
func (s *SqliteRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return ports.RouteResult{}, false, nil
	}

	q := `
	SELECT distance_km, duration_min
	FROM route_cache
	WHERE pair_key = ?;
	`

	var km, minutes float64
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&km, &minutes)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return ports.RouteResult{DistanceKm: km, DurationMin: minutes}, true, nil
}

// Store one route result.
func (s *SqliteRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: empty pair key")
	}

	q := `
	INSERT OR REPLACE INTO route_cache (pair_key, distance_km, duration_min)
	VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, r.DistanceKm, r.DurationMin); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}
	return nil
}
