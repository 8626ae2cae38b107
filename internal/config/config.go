package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings.
type Config struct {
	// External services.
	GeocodeBaseURL string
	RouteBaseURL   string
	UserAgent      string

	// Bulk pipeline tuning. Defaults respect the public rate limits of the
	// default providers.
	GeocodeBatchSize  int
	GeocodeBatchDelay time.Duration
	GeocodeRetries    int
	GeocodeBackoff    time.Duration
	RouteDelay        time.Duration

	// Cache backend: memory, sqlite, postgres, or redis.
	CacheBackend string
	SqlitePath   string
	DatabaseURL  string
	RedisAddr    string

	// Watch mode.
	WatchDir  string
	OutputDir string
}

// Load reads configuration from environment and optional .env file.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := Config{
		GeocodeBaseURL: getenv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		RouteBaseURL:   getenv("ROUTE_BASE_URL", "https://router.project-osrm.org"),
		UserAgent:      getenv("GEOCODE_USER_AGENT", "distance-calculator/1.0"),

		GeocodeBatchSize:  getenvInt("GEOCODE_BATCH_SIZE", 25),
		GeocodeBatchDelay: getenvDuration("GEOCODE_BATCH_DELAY", 250*time.Millisecond),
		GeocodeRetries:    getenvInt("GEOCODE_RETRIES", 2),
		GeocodeBackoff:    getenvDuration("GEOCODE_BACKOFF", 300*time.Millisecond),
		RouteDelay:        getenvDuration("ROUTE_DELAY", 100*time.Millisecond),

		CacheBackend: getenv("CACHE_BACKEND", "memory"),
		SqlitePath:   getenv("SQLITE_PATH", "data/cache.db"),
		DatabaseURL:  getenv("DATABASE_URL", ""),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),

		WatchDir:  getenv("WATCH_DIR", ""),
		OutputDir: getenv("OUTPUT_DIR", "."),
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
