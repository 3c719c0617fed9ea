package geo

import "math"

// Mean Earth radius in kilometers.
const EarthRadiusKm = 6371.0

// HaversineKm computes the great-circle distance in kilometers between two
// latitude/longitude points.
//
// Inputs are assumed to be valid coordinates; range checks are a boundary
// responsibility (see ValidLatitude/ValidLongitude). The result is always
// non-negative and finite for valid inputs, zero for identical points, and
// symmetric under swapping the two points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadiusKm * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Report whether a latitude is within [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// Report whether a longitude is within [-180, 180].
func ValidLongitude(lon float64) bool {
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}
