package bulk

import (
	"testing"

	"distance-calculator/internal/csvio"
)

func TestClassifyPartitionsRows(t *testing.T) {
	raw := []csvio.Row{
		{"from": "Delhi, India", "to": "Goa, India"},
		{"from": "A", "from_lat": "28.6", "from_lon": "77.2", "to": "B", "to_lat": "15.3", "to_lon": "74.1"},
		{"from": "Delhi, India", "to": "Mumbai, India"},
		{"from": "", "to": ""},
	}

	cls := Classify(raw)

	if len(cls.Rows) != 3 {
		t.Fatalf("rows = %d, want 3 (blank row dropped)", len(cls.Rows))
	}
	if len(cls.Ready) != 1 || cls.Ready[0] != 1 {
		t.Fatalf("ready = %v, want [1]", cls.Ready)
	}
	if len(cls.NeedsGeocode) != 2 {
		t.Fatalf("needsGeocode = %v", cls.NeedsGeocode)
	}

	// Dedup, first-seen order, coordinate-bearing endpoints excluded.
	want := []string{"Delhi, India", "Goa, India", "Mumbai, India"}
	if len(cls.Names) != len(want) {
		t.Fatalf("names = %v, want %v", cls.Names, want)
	}
	for i := range want {
		if cls.Names[i] != want[i] {
			t.Fatalf("names = %v, want %v", cls.Names, want)
		}
	}
}

func TestClassifyMixedRowExcludesCoordEndpointFromNames(t *testing.T) {
	raw := []csvio.Row{
		{"from": "Depot", "from_lat": "28.6", "from_lon": "77.2", "to": "Goa, India"},
	}

	cls := Classify(raw)
	if len(cls.NeedsGeocode) != 1 {
		t.Fatalf("needsGeocode = %v", cls.NeedsGeocode)
	}
	if len(cls.Names) != 1 || cls.Names[0] != "Goa, India" {
		t.Fatalf("names = %v, want [Goa, India]", cls.Names)
	}
}

func TestClassifyNonNumericCoordinatesNeedGeocoding(t *testing.T) {
	raw := []csvio.Row{
		{"from": "A", "from_lat": "north", "from_lon": "77.2", "to": "B", "to_lat": "15.3", "to_lon": "74.1"},
	}

	cls := Classify(raw)
	if len(cls.Ready) != 0 {
		t.Fatalf("ready = %v, want none", cls.Ready)
	}
	if len(cls.Names) != 1 || cls.Names[0] != "A" {
		t.Fatalf("names = %v, want [A]", cls.Names)
	}
}

func TestClassifySingleColumnTwoNames(t *testing.T) {
	raw := []csvio.Row{
		{"route": "Delhi,Goa"},
	}

	cls := Classify(raw)
	if len(cls.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(cls.Rows))
	}
	row := cls.Rows[0]
	if row.From.Name != "Delhi" || row.To.Name != "Goa" {
		t.Fatalf("row = %+v", row)
	}
}

func TestClassifySingleColumnFourNumbers(t *testing.T) {
	raw := []csvio.Row{
		{"route": "28.6139, 77.2090, 15.2993, 74.1240"},
	}

	cls := Classify(raw)
	if len(cls.Ready) != 1 {
		t.Fatalf("ready = %v, want one row", cls.Ready)
	}

	row := cls.Rows[0]
	if row.From.Name != "Coordinates" || row.To.Name != "Coordinates" {
		t.Fatalf("synthetic names missing: %+v", row)
	}
	if row.From.Coords.Lat != 28.6139 || row.To.Coords.Lon != 74.1240 {
		t.Fatalf("coords = %+v", row)
	}
}

func TestClassifyExtraColumnsPassThrough(t *testing.T) {
	raw := []csvio.Row{
		{"from": "Delhi", "to": "Goa", "shipment_id": "S-17", "notes": "fragile"},
	}

	cls := Classify(raw)
	row := cls.Rows[0]
	if row.Extra["shipment_id"] != "S-17" || row.Extra["notes"] != "fragile" {
		t.Fatalf("extra = %v", row.Extra)
	}
	if _, ok := row.Extra["from"]; ok {
		t.Fatal("known columns must not leak into Extra")
	}
}
