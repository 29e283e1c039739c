package spatial

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points in meters.
// s2 evaluates the haversine on the unit sphere; inputs are degrees.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// CircleContains reports whether point lies within radius meters of center
func CircleContains(center Point, radius float64, point Point) bool {
	return HaversineDistance(center.Lat, center.Lon, point.Lat, point.Lon) <= radius
}
