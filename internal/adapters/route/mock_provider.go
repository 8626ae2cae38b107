package route

import (
	"context"
	"sync"

	"distance-calculator/internal/domain"
	"distance-calculator/internal/ports"
)

// MockProvider serves routes from a fixed table keyed by rounded pair key.
// Pairs absent from the table behave as "no road connection".
type MockProvider struct {
	mu    sync.Mutex
	m     map[string]ports.RouteResult
	calls int

	// Err, when set, is returned for every fetch regardless of the table.
	Err error
}

func NewMockProvider(routes map[string]ports.RouteResult) *MockProvider {
	if routes == nil {
		routes = make(map[string]ports.RouteResult)
	}
	return &MockProvider{m: routes}
}

// Add registers a route for the ordered pair. The reverse direction is not
// implied; register it separately when needed.
func (p *MockProvider) Add(from, to domain.Coordinates, r ports.RouteResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[domain.PairKey(from, to)] = r
}

func (p *MockProvider) FetchRoute(ctx context.Context, from, to domain.Coordinates) (ports.RouteResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.RouteResult{}, err
	}

	p.mu.Lock()
	p.calls++
	r, ok := p.m[domain.PairKey(from, to)]
	err := p.Err
	p.mu.Unlock()

	if err != nil {
		return ports.RouteResult{}, err
	}
	if !ok {
		return ports.RouteResult{}, ports.ErrNoRoute
	}
	return r, nil
}

// Calls returns the number of fetches issued.
func (p *MockProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
