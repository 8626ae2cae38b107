package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"distance-calculator/internal/domain"
	"distance-calculator/internal/ports"
)

// Key prefixes keep the two caches apart in a shared redis instance.
const (
	redisGeocodePrefix = "geocode:"
	redisRoutePrefix   = "route:"
)

// RedisGeocodeCache stores name -> "lat,lon" entries in redis. Entries carry
// no TTL; the cache grows with the distinct names ever looked up.
type RedisGeocodeCache struct {
	Client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client}
}

func (c *RedisGeocodeCache) Get(ctx context.Context, name string) (domain.Coordinates, bool, error) {
	if name == "" {
		return domain.Coordinates{}, false, nil
	}

	v, err := c.Client.Get(ctx, redisGeocodePrefix+name).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: redis get: %w", err)
	}

	lat, lon, err := parsePair(v)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache name=%q: %w", name, err)
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, true, nil
}

func (c *RedisGeocodeCache) Put(ctx context.Context, name string, coords domain.Coordinates) error {
	if name == "" {
		return errors.New("insert geocode cache: empty name key")
	}

	v := formatPair(coords.Lat, coords.Lon)
	if err := c.Client.Set(ctx, redisGeocodePrefix+name, v, 0).Err(); err != nil {
		return fmt.Errorf("insert geocode cache name=%q: redis set: %w", name, err)
	}
	return nil
}

// RedisRouteCache stores pair-key -> "km,min" entries in redis.
type RedisRouteCache struct {
	Client *redis.Client
}

func NewRedisRouteCache(client *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{Client: client}
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	if key == "" {
		return ports.RouteResult{}, false, nil
	}

	v, err := c.Client.Get(ctx, redisRoutePrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: redis get: %w", err)
	}

	km, minutes, err := parsePair(v)
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}
	return ports.RouteResult{DistanceKm: km, DurationMin: minutes}, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) error {
	if key == "" {
		return errors.New("insert route cache: empty pair key")
	}

	v := formatPair(r.DistanceKm, r.DurationMin)
	if err := c.Client.Set(ctx, redisRoutePrefix+key, v, 0).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: redis set: %w", key, err)
	}
	return nil
}

func formatPair(a, b float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64) + "," + strconv.FormatFloat(b, 'f', -1, 64)
}

func parsePair(v string) (float64, float64, error) {
	parts := strings.SplitN(v, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed cache value %q", v)
	}
	a, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed cache value %q: %w", v, err)
	}
	b, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed cache value %q: %w", v, err)
	}
	return a, b, nil
}
