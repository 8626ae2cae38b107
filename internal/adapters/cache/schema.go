package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSqliteSchema creates the cache tables in a local sqlite database.
func InitSqliteSchema(db *sql.DB) error {
	return initSchema(db, []string{
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        name TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL
    );
	`,
		`
	CREATE TABLE IF NOT EXISTS route_cache (
        pair_key TEXT PRIMARY KEY,
        distance_km REAL NOT NULL,
        duration_min REAL NOT NULL
    );
	`,
	})
}

// InitPostgresSchema creates the cache tables in postgres.
func InitPostgresSchema(db *sql.DB) error {
	return initSchema(db, []string{
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        name TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL
    );
	`,
		`
	CREATE TABLE IF NOT EXISTS route_cache (
        pair_key TEXT PRIMARY KEY,
        distance_km DOUBLE PRECISION NOT NULL,
        duration_min DOUBLE PRECISION NOT NULL
    );
	`,
	})
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
