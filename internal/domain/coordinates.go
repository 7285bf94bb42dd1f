package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinates marks latitude/longitude values outside the valid
// WGS84 range. Invalid coordinates are rejected, never clamped.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Immutable geographic coordinates (latitude, longitude).
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinates, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinates, c.Lon)
	}
	return nil
}

const earthRadiusKm = 6371.0

// GreatCircleKm returns the haversine distance between two points in kilometers.
func GreatCircleKm(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// QuantizedKey builds a cache key for an origin/destination pair, rounding
// both points to 4 decimal degrees (~11 m) so near-duplicate queries share
// a slot.
func QuantizedKey(origin, destination Coordinate) string {
	return fmt.Sprintf("%.4f,%.4f|%.4f,%.4f",
		origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}
