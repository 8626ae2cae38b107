package services

import (
	"context"
	"errors"
	"log"

	"distance-calculator/internal/domain"
	"distance-calculator/internal/ports"
)

// Router resolves a coordinate pair to a driving distance and duration
// through a cache-or-fetch path.
//
// Unlike the Geocoder there is no retry: a routing failure means "no road
// connection", a definitive answer rather than a transient fault.
type Router struct {
	Provider ports.RouteProvider
	Cache    ports.RouteCache
}

func NewRouter(provider ports.RouteProvider, cache ports.RouteCache) *Router {
	return &Router{Provider: provider, Cache: cache}
}

// Route returns the driving distance/duration for the pair. The boolean is
// false when no route exists, the service failed, or ctx was cancelled.
func (r *Router) Route(ctx context.Context, from, to domain.Coordinates) (ports.RouteResult, bool) {
	key := domain.PairKey(from, to)

	if res, ok, err := r.Cache.Get(ctx, key); err != nil {
		log.Printf("route cache read failed key=%q: %v", key, err)
	} else if ok {
		return res, true
	}

	if ctx.Err() != nil {
		return ports.RouteResult{}, false
	}

	res, err := r.Provider.FetchRoute(ctx, from, to)
	if err != nil {
		if !errors.Is(err, ports.ErrNoRoute) && ctx.Err() == nil {
			log.Printf("route lookup failed key=%q: %v", key, err)
		}
		return ports.RouteResult{}, false
	}

	if err := r.Cache.Put(ctx, key, res); err != nil {
		log.Printf("route cache write failed key=%q: %v", key, err)
	}
	return res, true
}
