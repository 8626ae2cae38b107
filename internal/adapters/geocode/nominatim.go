package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"distance-calculator/internal/domain"
	"distance-calculator/internal/platform/obs"
	"distance-calculator/internal/ports"
)

// NominatimProvider implements ports.GeocodeProvider against a
// Nominatim-compatible search endpoint.
//
// The provider is stateless and safe for concurrent use. Retry policy is the
// caller's concern; a single Lookup issues exactly one request.
type NominatimProvider struct {
	session   *http.Client
	baseURL   string
	userAgent string
	limit     int
}

func NewNominatimProvider(baseURL, userAgent string) *NominatimProvider {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}

	return &NominatimProvider{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		limit:     3,
	}
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Address     struct {
		Country string `json:"country"`
		State   string `json:"state"`
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
	} `json:"address"`
}

// Lookup resolves a free-text query to ranked candidates, best match first.
func (p *NominatimProvider) Lookup(ctx context.Context, query string) (_ []ports.GeocodeCandidate, err error) {
	defer obs.Time(ctx, "nominatim.Lookup")(&err)

	endpoint := p.baseURL + "/search"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "jsonv2")
	q.Set("limit", strconv.Itoa(p.limit))
	q.Set("addressdetails", "1")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	out := make([]ports.GeocodeCandidate, 0, len(decoded))
	for _, r := range decoded {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			return nil, fmt.Errorf("invalid coordinate format for %q", query)
		}

		city := r.Address.City
		if city == "" {
			city = r.Address.Town
		}
		if city == "" {
			city = r.Address.Village
		}

		out = append(out, ports.GeocodeCandidate{
			DisplayName: r.DisplayName,
			Coords:      domain.Coordinates{Lat: lat, Lon: lon},
			Country:     r.Address.Country,
			State:       r.Address.State,
			City:        city,
		})
	}

	return out, nil
}
