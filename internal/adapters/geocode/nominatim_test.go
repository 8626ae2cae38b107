package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNominatimLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Delhi, India" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("format"); got != "jsonv2" {
			t.Errorf("format = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "distance-calculator-test" {
			t.Errorf("user-agent = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"display_name":"Delhi, India","lat":"28.6139","lon":"77.2090",
			 "address":{"country":"India","state":"Delhi","city":"New Delhi"}},
			{"display_name":"Delhi, NY, USA","lat":"42.2781","lon":"-74.9160",
			 "address":{"country":"United States","state":"New York","town":"Delhi"}}
		]`))
	}))
	defer srv.Close()

	p := NewNominatimProvider(srv.URL, "distance-calculator-test")

	candidates, err := p.Lookup(context.Background(), "Delhi, India")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	top := candidates[0]
	if top.Coords.Lat != 28.6139 || top.Coords.Lon != 77.2090 {
		t.Errorf("top coords = %v", top.Coords)
	}
	if top.Country != "India" || top.City != "New Delhi" {
		t.Errorf("top address = %q/%q", top.Country, top.City)
	}

	// Town falls back into the City slot.
	if candidates[1].City != "Delhi" {
		t.Errorf("second city = %q", candidates[1].City)
	}
}

func TestNominatimLookupNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewNominatimProvider(srv.URL, "")
	candidates, err := p.Lookup(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
}

func TestNominatimLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewNominatimProvider(srv.URL, "")
	_, err := p.Lookup(context.Background(), "Delhi")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}

	var se *httpStatusError
	if !errors.As(err, &se) || se.Code != http.StatusTooManyRequests {
		t.Fatalf("error = %v, want status error with code 429", err)
	}
}
