package geo

import (
	"errors"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula
const earthRadiusKm = 6371.0

var (
	ErrLatitudeOutOfRange  = errors.New("latitude must be between -90 and 90 degrees")
	ErrLongitudeOutOfRange = errors.New("longitude must be between -180 and 180 degrees")
)

// Point is a GPS coordinate pair in decimal degrees
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the point is a plausible coordinate pair
func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return ErrLatitudeOutOfRange
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return ErrLongitudeOutOfRange
	}
	return nil
}

// DistanceKm returns the haversine distance between two points in kilometers
func DistanceKm(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
