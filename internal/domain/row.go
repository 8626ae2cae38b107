package domain

// TravelMode selects which distance is computed for a row.
type TravelMode string

const (
	ModeAir  TravelMode = "air"
	ModeRoad TravelMode = "road"
)

// Valid reports whether m is a supported travel mode.
func (m TravelMode) Valid() bool { return m == ModeAir || m == ModeRoad }

// One endpoint of a route row: a free-text name, explicit coordinates, or both.
// A usable endpoint carries at least one of the two.
type LocationInput struct {
	Name      string
	Coords    Coordinates
	HasCoords bool
}

// Resolvable reports whether the endpoint can possibly be resolved to
// coordinates (directly or through geocoding).
func (l LocationInput) Resolvable() bool { return l.HasCoords || l.Name != "" }

// RouteRow is one parsed input row. Extra holds pass-through columns that are
// copied to the output unchanged. Immutable once classified.
type RouteRow struct {
	From  LocationInput
	To    LocationInput
	Extra map[string]string
}

// HasBothCoords reports whether both endpoints carry explicit coordinates,
// i.e. the row needs no geocoding.
func (r RouteRow) HasBothCoords() bool { return r.From.HasCoords && r.To.HasCoords }

// Row-level error annotations surfaced in the output file.
const (
	ErrAnnotationGeocode = "Geocoding failed"
	ErrAnnotationRoute   = "Road route not available"
)

// ResolvedRoute is a RouteRow with its computed results. Distance and duration
// fields are meaningful only when Resolved is true; rows that could not be
// fully resolved keep Resolved false and carry an error annotation instead.
type ResolvedRoute struct {
	Row RouteRow

	FromCoords Coordinates
	ToCoords   Coordinates

	Resolved    bool
	DistanceKm  float64
	DurationMin float64 // road mode only
	Err         string
}
