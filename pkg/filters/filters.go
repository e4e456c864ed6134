// Package filters decides which location fixes are worth uploading to the
// tracker, so a device sitting still does not burn requests re-reporting the
// same position.
package filters

import (
	"time"

	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/location"
)

// Filter votes on whether a new fix should be uploaded given the previously
// uploaded one.
type Filter interface {
	ShouldUpload(previous, current location.Location) bool
}

// ShouldUpload applies a filter chain: the fix is uploaded when any filter
// votes for it. An empty chain uploads every fix.
func ShouldUpload(chain []Filter, previous, current location.Location) bool {
	if len(chain) == 0 {
		return true
	}
	for _, f := range chain {
		if f.ShouldUpload(previous, current) {
			return true
		}
	}
	return false
}

// TimeFilter votes to upload once at least Threshold has elapsed since the
// last uploaded fix.
type TimeFilter struct {
	Threshold time.Duration
}

func (f TimeFilter) ShouldUpload(previous, current location.Location) bool {
	return current.Time.Sub(previous.Time) >= f.Threshold
}

// DistanceFilter votes to upload once the device has moved at least
// Threshold meters from the last uploaded fix.
type DistanceFilter struct {
	Threshold float64
}

func (f DistanceFilter) ShouldUpload(previous, current location.Location) bool {
	return HaversineDistance(previous, current) >= f.Threshold
}

// AccuracyFilter votes against fixes whose movement since the last upload is
// within the combined accuracy radius of the two fixes, i.e. movement that is
// indistinguishable from measurement noise.
type AccuracyFilter struct{}

func (AccuracyFilter) ShouldUpload(previous, current location.Location) bool {
	return HaversineDistance(previous, current) >= previous.Accuracy+current.Accuracy
}
