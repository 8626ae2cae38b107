package bulk

import (
	"fmt"
	"sort"
	"time"

	"distance-calculator/internal/csvio"
	"distance-calculator/internal/domain"
)

// Placeholder for distance and duration fields that could not be resolved.
const unavailable = "N/A"

// OutputHeaders returns the output column order for the travel mode.
// Extra pass-through columns (collected from the rows, sorted) follow the
// fixed columns.
func OutputHeaders(mode domain.TravelMode, results []domain.ResolvedRoute) []string {
	headers := []string{"from", "to", "from_lat", "from_lon", "to_lat", "to_lon", "distance_km", "distance_miles"}
	if mode == domain.ModeAir {
		headers = append(headers, "flight_time_hours")
	} else {
		headers = append(headers, "duration_min")
	}
	headers = append(headers, "error")

	extras := make(map[string]struct{})
	for _, r := range results {
		for k := range r.Row.Extra {
			extras[k] = struct{}{}
		}
	}
	extraCols := make([]string, 0, len(extras))
	for k := range extras {
		extraCols = append(extraCols, k)
	}
	sort.Strings(extraCols)

	return append(headers, extraCols...)
}

// OutputRows serializes results into column-keyed rows in input order,
// with coordinates at 4 decimals and distances at 2.
func OutputRows(mode domain.TravelMode, results []domain.ResolvedRoute) []csvio.Row {
	rows := make([]csvio.Row, 0, len(results))

	for _, r := range results {
		row := csvio.Row{
			"from":  r.Row.From.Name,
			"to":    r.Row.To.Name,
			"error": r.Err,
		}

		if r.Row.From.HasCoords || r.Resolved {
			row["from_lat"] = fmt.Sprintf("%.4f", r.FromCoords.Lat)
			row["from_lon"] = fmt.Sprintf("%.4f", r.FromCoords.Lon)
		}
		if r.Row.To.HasCoords || r.Resolved {
			row["to_lat"] = fmt.Sprintf("%.4f", r.ToCoords.Lat)
			row["to_lon"] = fmt.Sprintf("%.4f", r.ToCoords.Lon)
		}

		if r.Resolved {
			row["distance_km"] = fmt.Sprintf("%.2f", r.DistanceKm)
			row["distance_miles"] = fmt.Sprintf("%.2f", domain.KmToMiles(r.DistanceKm))
			if mode == domain.ModeAir {
				row["flight_time_hours"] = fmt.Sprintf("%.2f", domain.FlightHours(r.DistanceKm))
			} else {
				row["duration_min"] = fmt.Sprintf("%.2f", r.DurationMin)
			}
		} else {
			row["distance_km"] = unavailable
			row["distance_miles"] = unavailable
			if mode == domain.ModeAir {
				row["flight_time_hours"] = unavailable
			} else {
				row["duration_min"] = unavailable
			}
		}

		for k, v := range r.Row.Extra {
			row[k] = v
		}

		rows = append(rows, row)
	}

	return rows
}

// OutputFileName builds the conventional result file name: travel mode plus a
// timestamp.
func OutputFileName(mode domain.TravelMode, format string, now time.Time) string {
	return fmt.Sprintf("distances_%s_%s.%s", mode, now.Format("20060102-150405"), format)
}
