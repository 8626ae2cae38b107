package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"distance-calculator/internal/domain"
)

// SQLite backed geocode cache for cross-run reuse. Name keys are stored
// exactly as submitted; the service layer decides whether to normalize.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached coordinates for one location name.
func (s *SqliteGeocodeCache) Get(ctx context.Context, name string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}
	if name == "" {
		return domain.Coordinates{}, false, nil
	}

	q := `
	SELECT lat, lon
	FROM geocode_cache
	WHERE name = ?;
	`

	var lat, lon float64
	err := s.DB.QueryRowContext(ctx, q, name).Scan(&lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, true, nil
}

// Store one name -> coordinates mapping.
func (s *SqliteGeocodeCache) Put(ctx context.Context, name string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if name == "" {
		return errors.New("insert geocode cache: empty name key")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (name, lat, lon)
	VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, name, c.Lat, c.Lon); err != nil {
		return fmt.Errorf("insert geocode cache name=%q: %w", name, err)
	}
	return nil
}
