// Package geo provides coordinate types, geodesic distance and the address
// resolution boundary used by the planning engine.
package geo

import "math"

// Point is a (latitude, longitude) pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsZero reports whether the point is the neutral origin default.
func (p Point) IsZero() bool { return p.Lat == 0 && p.Lon == 0 }

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// TravelHours converts a distance into driving time at the given average
// speed. A non-positive speed yields zero travel time.
func TravelHours(km, speedKmh float64) float64 {
	if speedKmh <= 0 {
		return 0
	}
	return km / speedKmh
}
