package geocode

import (
	"context"
	"sync"

	"distance-calculator/internal/domain"
	"distance-calculator/internal/ports"
)

// MockProvider resolves from a fixed table and counts lookups. Names absent
// from the table resolve to no candidates.
type MockProvider struct {
	mu    sync.Mutex
	m     map[string]domain.Coordinates
	calls map[string]int

	// FailFirst makes the first N lookups per name fail with Err before
	// resolving normally, for exercising retry behavior.
	FailFirst int
	Err       error
}

func NewMockProvider(entries map[string]domain.Coordinates) *MockProvider {
	return &MockProvider{m: entries, calls: make(map[string]int)}
}

func (p *MockProvider) Lookup(ctx context.Context, query string) ([]ports.GeocodeCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.calls[query]++
	n := p.calls[query]
	coords, ok := p.m[query]
	p.mu.Unlock()

	if n <= p.FailFirst && p.Err != nil {
		return nil, p.Err
	}
	if !ok {
		return nil, nil
	}

	return []ports.GeocodeCandidate{{DisplayName: query, Coords: coords}}, nil
}

// Calls returns how many lookups were issued for the name.
func (p *MockProvider) Calls(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[name]
}

// TotalCalls returns the lookup count across all names.
func (p *MockProvider) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, n := range p.calls {
		total += n
	}
	return total
}
