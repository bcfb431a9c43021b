package matching

import "math"

// EarthRadiusMiles is the Earth radius used by the haversine formula. Both the
// notification fan-out and the feed must agree on this constant, so it lives
// here and nowhere else.
const EarthRadiusMiles = 3959.0

type Coordinates struct {
	Lat float64
	Lng float64
}

// DistanceMiles returns the great-circle distance between two points
// (haversine, lat/lng in degrees). Symmetric; 0 for identical points.
func DistanceMiles(a, b Coordinates) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	lat1, lat2 := rad(a.Lat), rad(b.Lat)
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMiles * c
}

// WithinRadius reports whether point is at most radiusMiles from center.
// The boundary is inclusive.
func WithinRadius(center, point Coordinates, radiusMiles float64) bool {
	return DistanceMiles(center, point) <= radiusMiles
}
