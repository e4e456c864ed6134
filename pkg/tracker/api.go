package tracker

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/location"
)

// LocationAPI is the subset of the Amazon Location Service client used by
// TrackingClient. *location.Client satisfies it. The handle is injected by
// the caller, which owns its lifecycle and credentials.
type LocationAPI interface {
	BatchUpdateDevicePosition(ctx context.Context, params *location.BatchUpdateDevicePositionInput, optFns ...func(*location.Options)) (*location.BatchUpdateDevicePositionOutput, error)
	GetDevicePosition(ctx context.Context, params *location.GetDevicePositionInput, optFns ...func(*location.Options)) (*location.GetDevicePositionOutput, error)
	BatchEvaluateGeofences(ctx context.Context, params *location.BatchEvaluateGeofencesInput, optFns ...func(*location.Options)) (*location.BatchEvaluateGeofencesOutput, error)
}
