package bulk

import (
	"strconv"
	"strings"

	"distance-calculator/internal/csvio"
	"distance-calculator/internal/domain"
)

// Column names recognized by the classifier. Anything else is carried through
// to the output unchanged.
const (
	colFrom    = "from"
	colTo      = "to"
	colFromLat = "from_lat"
	colFromLon = "from_lon"
	colToLat   = "to_lat"
	colToLon   = "to_lon"
)

// Synthetic endpoint name for coordinate-only rows produced by the
// single-column normalization rule.
const syntheticName = "Coordinates"

// Classification partitions parsed rows by how much resolution they need.
// Index slices refer into Rows, which preserves input order.
type Classification struct {
	Rows []domain.RouteRow

	// Ready rows carry both coordinate pairs and skip geocoding entirely.
	Ready []int
	// NeedsGeocode rows lack coordinates on at least one endpoint.
	NeedsGeocode []int
	// Names is the deduplicated set of location names requiring lookup,
	// in first-seen order. Coordinate-bearing endpoints of mixed rows are
	// excluded.
	Names []string
}

// AllReady reports whether every usable row already has both coordinate pairs.
func (c Classification) AllReady() bool { return len(c.NeedsGeocode) == 0 }

// Classify builds RouteRows from parsed CSV rows, dropping rows with no
// usable field, and partitions them into coordinate-ready rows and rows
// needing at least one geocode.
func Classify(raw []csvio.Row) Classification {
	var out Classification

	seen := make(map[string]struct{})

	for _, rec := range raw {
		row, ok := buildRow(rec)
		if !ok {
			continue
		}

		idx := len(out.Rows)
		out.Rows = append(out.Rows, row)

		if row.HasBothCoords() {
			out.Ready = append(out.Ready, idx)
			continue
		}

		out.NeedsGeocode = append(out.NeedsGeocode, idx)
		for _, ep := range []domain.LocationInput{row.From, row.To} {
			if ep.HasCoords || ep.Name == "" {
				continue
			}
			if _, dup := seen[ep.Name]; dup {
				continue
			}
			seen[ep.Name] = struct{}{}
			out.Names = append(out.Names, ep.Name)
		}
	}

	return out
}

func buildRow(rec csvio.Row) (domain.RouteRow, bool) {
	rec = normalizeSingleColumn(rec)

	row := domain.RouteRow{
		From: buildEndpoint(rec, colFrom, colFromLat, colFromLon),
		To:   buildEndpoint(rec, colTo, colToLat, colToLon),
	}

	if !row.From.Resolvable() || !row.To.Resolvable() {
		return domain.RouteRow{}, false
	}

	for k, v := range rec {
		switch k {
		case colFrom, colTo, colFromLat, colFromLon, colToLat, colToLon:
		default:
			if row.Extra == nil {
				row.Extra = make(map[string]string)
			}
			row.Extra[k] = v
		}
	}

	return row, true
}

func buildEndpoint(rec csvio.Row, nameCol, latCol, lonCol string) domain.LocationInput {
	ep := domain.LocationInput{Name: rec[nameCol]}

	lat, latOK := parseFloat(rec[latCol])
	lon, lonOK := parseFloat(rec[lonCol])
	if latOK && lonOK {
		ep.Coords = domain.Coordinates{Lat: lat, Lon: lon}
		ep.HasCoords = true
	}

	return ep
}

// normalizeSingleColumn rewrites a row consisting of exactly one column whose
// value contains a comma: two parts become from/to names, four numeric parts
// become the two coordinate pairs with synthetic names.
func normalizeSingleColumn(rec csvio.Row) csvio.Row {
	if len(rec) != 1 {
		return rec
	}

	var value string
	for _, v := range rec {
		value = v
	}
	if !strings.Contains(value, ",") {
		return rec
	}

	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 2:
		return csvio.Row{colFrom: parts[0], colTo: parts[1]}
	case 4:
		for _, p := range parts {
			if _, ok := parseFloat(p); !ok {
				return rec
			}
		}
		return csvio.Row{
			colFrom: syntheticName, colTo: syntheticName,
			colFromLat: parts[0], colFromLon: parts[1],
			colToLat: parts[2], colToLon: parts[3],
		}
	default:
		return rec
	}
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
