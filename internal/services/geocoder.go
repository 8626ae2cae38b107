package services

import (
	"context"
	"log"
	"time"

	"distance-calculator/internal/domain"
	"distance-calculator/internal/ports"
)

// Geocoder resolves a free-text location name to coordinates through a
// cache-or-fetch path with bounded retry.
//
// Resolution failures are ordinary outcomes here, not errors: after the retry
// budget is spent the name simply stays unresolved and a warning is logged.
// The caller marks the affected rows instead of aborting the batch.
type Geocoder struct {
	Provider ports.GeocodeProvider
	Cache    ports.GeocodeCache

	// Retries is the number of additional attempts after the first failure.
	Retries int
	// BackoffBase scales linearly with the attempt number between attempts.
	BackoffBase time.Duration
}

func NewGeocoder(provider ports.GeocodeProvider, cache ports.GeocodeCache, retries int, backoffBase time.Duration) *Geocoder {
	return &Geocoder{
		Provider:    provider,
		Cache:       cache,
		Retries:     retries,
		BackoffBase: backoffBase,
	}
}

// Geocode resolves name to coordinates. The boolean is false when the name is
// empty, the lookup failed after all retries, or ctx was cancelled.
// Successful results are cached before returning, so concurrently scheduled
// lookups for the same name eventually observe the cached value.
func (g *Geocoder) Geocode(ctx context.Context, name string) (domain.Coordinates, bool) {
	if name == "" {
		return domain.Coordinates{}, false
	}

	if coords, ok, err := g.Cache.Get(ctx, name); err != nil {
		log.Printf("geocode cache read failed name=%q: %v", name, err)
	} else if ok {
		return coords, true
	}

	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return domain.Coordinates{}, false
		}

		candidates, err := g.Provider.Lookup(ctx, name)
		if err == nil && len(candidates) > 0 {
			coords := candidates[0].Coords
			if err := g.Cache.Put(ctx, name, coords); err != nil {
				log.Printf("geocode cache write failed name=%q: %v", name, err)
			}
			return coords, true
		}

		// Cancellation during the call does not count against the budget.
		if ctx.Err() != nil {
			return domain.Coordinates{}, false
		}

		if attempt >= g.Retries {
			log.Printf("geocode failed after %d attempts name=%q err=%v", attempt+1, name, err)
			return domain.Coordinates{}, false
		}

		backoff := g.BackoffBase * time.Duration(attempt+1)
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return domain.Coordinates{}, false
		case <-timer.C:
		}
	}
}
