package geo

import (
	"fmt"
	"math"

	"mood-dining-service/internal/domain"
)

const earthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two points.
func Haversine(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Meters returns the haversine distance rounded to whole meters, the unit
// carried on Station and RestaurantHit.
func Meters(a, b domain.Coordinate) int {
	return int(math.Round(Haversine(a, b)))
}

// PointAtBearing returns the coordinate reached by travelling distanceMeters
// from origin along the given compass bearing (0 = north, 90 = east), using
// the spherical forward geodesic.
func PointAtBearing(origin domain.Coordinate, bearingDeg, distanceMeters float64) domain.Coordinate {
	lat1 := origin.Lat * math.Pi / 180
	lng1 := origin.Lng * math.Pi / 180
	bearing := bearingDeg * math.Pi / 180
	angular := distanceMeters / earthRadiusMeters

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angular) +
		math.Cos(lat1)*math.Sin(angular)*math.Cos(bearing))
	lng2 := lng1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angular)*math.Cos(lat1),
		math.Cos(angular)-math.Sin(lat1)*math.Sin(lat2),
	)

	return domain.Coordinate{
		Lat: lat2 * 180 / math.Pi,
		Lng: lng2 * 180 / math.Pi,
	}
}

// FormatDistance renders meters for display: "850 m" below one kilometer,
// "1.2 km" above.
func FormatDistance(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}
