package ports

import (
	"context"

	"distance-calculator/internal/domain"
)

// One geocoding candidate returned by a lookup provider. Bulk processing uses
// only the top-ranked candidate; the address breakdown exists for the
// interactive surface.
type GeocodeCandidate struct {
	DisplayName string
	Coords      domain.Coordinates
	Country     string
	State       string
	City        string
}

// Contract for resolving a free-text location to coordinate candidates.
type GeocodeProvider interface {
	// Lookup returns ranked candidates for the query, best match first.
	// An empty slice means the provider found no match.
	Lookup(ctx context.Context, query string) ([]GeocodeCandidate, error)
}

// GeocodeCache memoizes successful name -> coordinates lookups. Keys are
// exact-match and case-sensitive as submitted. Entries are never evicted.
type GeocodeCache interface {
	Get(ctx context.Context, name string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, name string, coords domain.Coordinates) error
}
