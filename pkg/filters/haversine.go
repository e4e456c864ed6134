package filters

import (
	"math"

	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/location"
)

const earthRadiusMeters = 6371000

// HaversineDistance returns the great-circle distance between two fixes in
// meters.
func HaversineDistance(a, b location.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
