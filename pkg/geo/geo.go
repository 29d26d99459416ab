// Package geo provides the geographic helpers the stub ride server uses
// to turn a pair of addresses into a plausible estimate.
//
// Distances use the Haversine formula on WGS-84 coordinates. Travel
// time assumes a constant average city speed; the stub stands in for a
// real backend with a routing engine.
package geo

import (
	"hash/fnv"
	"math"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
)

const (
	// EarthRadiusKm is the mean radius of Earth in kilometers.
	EarthRadiusKm = 6371.0

	// AverageSpeedKmph is the assumed average city driving speed.
	AverageSpeedKmph = 30.0
)

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(a, b model.Location) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// EstimateTimeMinutes returns the estimated direct travel time between
// two points in minutes, assuming AverageSpeedKmph.
func EstimateTimeMinutes(a, b model.Location) float64 {
	return (HaversineKm(a, b) / AverageSpeedKmph) * 60.0
}

// PseudoGeocode maps an address string to a deterministic point inside
// a ~0.2°×0.2° city box. The same address always geocodes to the same
// point, so stub estimates are stable across calls.
func PseudoGeocode(address string) model.Location {
	h := fnv.New64a()
	_, _ = h.Write([]byte(address))
	sum := h.Sum64()

	// Spread the hash over the box around the stub city's center.
	latOff := float64(sum&0xFFFF) / 0xFFFF * 0.2
	lonOff := float64((sum>>16)&0xFFFF) / 0xFFFF * 0.2
	return model.Location{
		Lat: 37.60 + latOff,
		Lon: 23.70 + lonOff,
	}
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
