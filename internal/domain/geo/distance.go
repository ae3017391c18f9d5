package geo

import "math"

// EarthRadiusKm is the mean radius of Earth used for haversine distance.
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the great-circle distance in kilometers between two points
// specified by latitude and longitude in degrees.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Float noise can push a past 1 at exact antipodes; asin is undefined there.
	a = clamp(a, 0, 1)

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// Distance returns the great-circle distance in kilometers between a and b.
func Distance(a, b Point) float64 {
	return DistanceKm(a.Lat, a.Lon, b.Lat, b.Lon)
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
// NaN and infinities fail both comparisons and are rejected.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// IsFinite reports whether both coordinates are finite numbers.
func IsFinite(lat, lon float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) && !math.IsNaN(lon) && !math.IsInf(lon, 0)
}

// RoundKm rounds a distance to two decimal places for presentation.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
