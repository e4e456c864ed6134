package tracker

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/location/types"
)

// LocationSample is a single timestamped coordinate reported by a device.
// Timestamp is epoch milliseconds, matching what device location providers
// and persisted location entries carry.
type LocationSample struct {
	Timestamp int64   `json:"timestamp"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// positionUpdate maps a sample onto the wire record for the given device.
// Amazon Location expects positions as a (longitude, latitude) pair.
func positionUpdate(deviceID string, s LocationSample, sampleTime time.Time, props map[string]string) types.DevicePositionUpdate {
	return types.DevicePositionUpdate{
		DeviceId:           aws.String(deviceID),
		SampleTime:         aws.Time(sampleTime),
		Position:           []float64{s.Longitude, s.Latitude},
		PositionProperties: props,
	}
}
