package location

import "time"

// Location is a geographical fix reported by a provider.
type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64   // horizontal accuracy radius in meters
	Time      time.Time // when the fix was taken
}
