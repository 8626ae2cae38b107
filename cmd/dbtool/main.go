package main

import (
	"log"
	"strings"

	"distance-calculator/internal/adapters/cache"
	"distance-calculator/internal/config"
	"distance-calculator/internal/platform/db"
)

// dbtool initialises the cache schema for the persistent backends. Run it
// once before pointing CACHE_BACKEND at sqlite or postgres.
func main() {
	cfg := config.Load()

	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		pdb, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pdb.Close()

		log.Println("Initializing postgres cache schema...")
		if err := cache.InitPostgresSchema(pdb); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		log.Println("Schema ready.")
		return
	}

	sdb, err := db.OpenSqlite(cfg.SqlitePath)
	if err != nil {
		log.Fatal(err)
	}
	defer sdb.Close()

	log.Printf("Initializing sqlite cache schema at %s...", cfg.SqlitePath)
	if err := cache.InitSqliteSchema(sdb); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
