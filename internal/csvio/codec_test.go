package csvio

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseNormalizesHeadersAndValues(t *testing.T) {
	rows, err := Parse(strings.NewReader(" From , TO ,Notes\n\"Delhi, India\", \"Goa, India\" ,ok\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row["from"] != "Delhi, India" {
		t.Errorf("from = %q", row["from"])
	}
	if row["to"] != "Goa, India" {
		t.Errorf("to = %q", row["to"])
	}
	if row["notes"] != "ok" {
		t.Errorf("notes = %q", row["notes"])
	}
}

func TestParseSkipsBlankLinesAndShortRecords(t *testing.T) {
	in := "from,to\n\nParis\n"
	rows, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if _, ok := rows[0]["to"]; ok {
		t.Errorf("missing column should be absent, got %q", rows[0]["to"])
	}
}

func TestParseEmptyInput(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseUnterminatedQuote(t *testing.T) {
	if _, err := Parse(strings.NewReader("from,to\n\"Delhi,Goa\n")); err == nil {
		t.Fatal("expected error for unterminated quote")
	}
}

func TestWriteQuotesSpecialFields(t *testing.T) {
	var buf bytes.Buffer
	headers := []string{"from", "to"}
	rows := []Row{{"from": "Delhi, India", "to": `say "hi"`}}

	if err := Write(&buf, headers, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "from,to\n\"Delhi, India\",\"say \"\"hi\"\"\"\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestRoundTrip(t *testing.T) {
	headers := []string{"from", "to", "distance_km", "error"}
	rows := []Row{
		{"from": "Delhi, India", "to": "Goa, India", "distance_km": "1876.74", "error": ""},
		{"from": "Coordinates", "to": "Coordinates", "distance_km": "N/A", "error": "Geocoding failed"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, headers, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed) != len(rows) {
		t.Fatalf("row count = %d, want %d", len(parsed), len(rows))
	}
	for i, row := range rows {
		for _, h := range headers {
			if parsed[i][h] != row[h] {
				t.Errorf("row %d col %s = %q, want %q", i, h, parsed[i][h], row[h])
			}
		}
	}
}
