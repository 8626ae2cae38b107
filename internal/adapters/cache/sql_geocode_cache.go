package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"distance-calculator/internal/domain"
	"distance-calculator/internal/platform/obs"
)

// SQLGeocodeCache is the postgres variant of the geocode cache, for
// deployments sharing one cache across hosts.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for one location name.
func (s *SQLGeocodeCache) Get(ctx context.Context, name string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}
	if name == "" {
		return domain.Coordinates{}, false, nil
	}

	q := `
	SELECT lat, lon
	FROM geocode_cache
	WHERE name = $1;
	`

	var lat, lon float64
	err = s.DB.QueryRowContext(ctx, q, name).Scan(&lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, true, nil
}

// Store one name -> coordinates mapping.
func (s *SQLGeocodeCache) Put(ctx context.Context, name string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if name == "" {
		return errors.New("insert geocode cache: empty name key")
	}

	q := `
	INSERT INTO geocode_cache (name, lat, lon)
	VALUES ($1, $2, $3)
	ON CONFLICT (name) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`

	if _, err := s.DB.ExecContext(ctx, q, name, c.Lat, c.Lon); err != nil {
		return fmt.Errorf("insert geocode cache name=%q: %w", name, err)
	}
	return nil
}
