package route

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"distance-calculator/internal/domain"
	"distance-calculator/internal/platform/obs"
	"distance-calculator/internal/ports"
)

// OSRMProvider implements ports.RouteProvider against an OSRM-compatible
// route endpoint. A non-Ok response code maps to ports.ErrNoRoute: routing
// failures are treated as "no road connection", a meaningful outcome, and are
// never retried.
type OSRMProvider struct {
	session *http.Client
	baseURL string
	profile string
}

func NewOSRMProvider(baseURL string) *OSRMProvider {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}

	return &OSRMProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving",
	}
}

// pathSegment renders a coordinate in the lon,lat order OSRM expects.
func pathSegment(c domain.Coordinates) string {
	ll := c.LonLat()
	return fmt.Sprintf("%f,%f", ll[0], ll[1])
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

// FetchRoute returns the first route candidate between the pair, converted to
// kilometers and minutes.
func (p *OSRMProvider) FetchRoute(ctx context.Context, from, to domain.Coordinates) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.FetchRoute")(&err)

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s;%s?overview=false",
		p.baseURL, p.profile, pathSegment(from), pathSegment(to),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("create route request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.session.Do(req)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("execute route request: %w", err)
	}
	defer resp.Body.Close()

	// OSRM reports routing failures as 4xx with a JSON code; either signal
	// means no usable route.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ports.RouteResult{}, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return ports.RouteResult{}, ports.ErrNoRoute
	}

	best := decoded.Routes[0]
	return ports.RouteResult{
		DistanceKm:  best.Distance / 1000,
		DurationMin: best.Duration / 60,
	}, nil
}
