package domain

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm = 6371

	// Assumed cruise speed behind the flight-time estimate. An approximation
	// for display purposes, not a physical model.
	cruiseSpeedKmh = 800

	milesPerKm = 0.621371
)

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) LonLat() []float64 { return []float64{c.Lon, c.Lat} }

// PairKey returns the cache key for a coordinate pair. Coordinates are rounded
// to 4 decimals (~11 m), so route requests within that tolerance collapse to
// a single cache entry and a single network call.
func PairKey(from, to Coordinates) string {
	return fmt.Sprintf("%.4f,%.4f-%.4f,%.4f", from.Lat, from.Lon, to.Lat, to.Lon)
}

// GreatCircleKm computes the haversine great-circle distance in kilometers.
func GreatCircleKm(from, to Coordinates) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLon := (to.Lon - from.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// KmToMiles converts kilometers to statute miles.
func KmToMiles(km float64) float64 { return km * milesPerKm }

// FlightHours estimates flight time in hours at the assumed cruise speed.
func FlightHours(km float64) float64 { return km / cruiseSpeedKmh }
