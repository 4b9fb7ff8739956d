package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineKm calculates the great-circle distance between two points in kilometers.
// s2.LatLng.Distance evaluates the haversine formula, so the result is symmetric,
// zero for identical points and NaN when any input is NaN.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// DistanceToSegmentKm returns the great-circle distance in kilometers from p to the
// closest point of the geodesic segment a-b
func DistanceToSegmentKm(p, a, b Point) float64 {
	x := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lng))
	sa := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lng))
	sb := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lng))
	return s2.DistanceFromSegment(x, sa, sb).Radians() * EarthRadiusKm
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to point 2
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lngDiff := (lng2 - lng1) * math.Pi / 180

	y := math.Sin(lngDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lngDiff)
	bearing := math.Atan2(y, x)

	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}
