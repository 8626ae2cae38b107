package cache

import (
	"context"
	"sync"

	"distance-calculator/internal/domain"
	"distance-calculator/internal/ports"
)

// In-memory geocode cache scoped to the process lifetime. No eviction.
// Safe for concurrent use by scheduler tasks.
type MemoryGeocodeCache struct {
	mu sync.RWMutex
	m  map[string]domain.Coordinates
}

func NewMemoryGeocodeCache() *MemoryGeocodeCache {
	return &MemoryGeocodeCache{m: make(map[string]domain.Coordinates)}
}

func (c *MemoryGeocodeCache) Get(_ context.Context, name string) (domain.Coordinates, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[name]
	return v, ok, nil
}

func (c *MemoryGeocodeCache) Put(_ context.Context, name string, coords domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[name] = coords
	return nil
}

// Len returns the number of cached names.
func (c *MemoryGeocodeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// In-memory route cache keyed by rounded coordinate-pair key. No eviction.
type MemoryRouteCache struct {
	mu sync.RWMutex
	m  map[string]ports.RouteResult
}

func NewMemoryRouteCache() *MemoryRouteCache {
	return &MemoryRouteCache{m: make(map[string]ports.RouteResult)}
}

func (c *MemoryRouteCache) Get(_ context.Context, key string) (ports.RouteResult, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok, nil
}

func (c *MemoryRouteCache) Put(_ context.Context, key string, r ports.RouteResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = r
	return nil
}
