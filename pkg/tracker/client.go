package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/location"
	"github.com/aws/aws-sdk-go-v2/service/location/types"
	"github.com/rs/zerolog"

	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/identity"
)

// defaultMaxRetries is applied when the configuration leaves MaxRetries unset.
const defaultMaxRetries = 3

// Config holds the per-client settings for the tracking client.
type Config struct {
	TrackerName        string        // Amazon Location tracker resource name
	GeofenceCollection string        // default geofence collection for evaluations
	MaxRetries         int           // total attempts for batch position updates
	RetryDelay         time.Duration // fixed delay between attempts, zero for none
}

// TrackingClient translates device location samples into Amazon Location
// Service calls: batch position updates (with bounded retry), last-known
// position reads and batch geofence evaluations. It holds no mutable state,
// so a single instance is safe for concurrent use.
type TrackingClient struct {
	cfg        Config
	api        LocationAPI
	deviceInfo identity.DeviceIDProvider
	logger     zerolog.Logger
}

// NewTrackingClient creates a new TrackingClient. The api handle may be nil;
// in that state batch updates are silent no-ops and read/evaluate operations
// fail with ErrMissingClient.
func NewTrackingClient(cfg Config, api LocationAPI, deviceInfo identity.DeviceIDProvider, logger zerolog.Logger) *TrackingClient {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	return &TrackingClient{
		cfg:        cfg,
		api:        api,
		deviceInfo: deviceInfo,
		logger:     logger,
	}
}

// UpdateDeviceLocations uploads the given samples as one batch position
// update for this device, preserving input order. Each sample keeps its own
// timestamp. The call is retried up to the configured number of attempts;
// exhaustion surfaces an *UpdateError wrapping the last cause.
func (c *TrackingClient) UpdateDeviceLocations(ctx context.Context, samples []LocationSample) (*location.BatchUpdateDevicePositionOutput, error) {
	if c.api == nil {
		c.logger.Warn().Msg("No location client handle set, skipping batch position update")
		return nil, nil
	}
	if len(samples) == 0 {
		c.logger.Debug().Msg("No location samples to upload")
		return nil, nil
	}

	deviceID := c.deviceInfo.GetDeviceID()
	updates := make([]types.DevicePositionUpdate, 0, len(samples))
	for _, s := range samples {
		updates = append(updates, positionUpdate(deviceID, s, time.UnixMilli(s.Timestamp), nil))
	}

	input := &location.BatchUpdateDevicePositionInput{
		TrackerName: aws.String(c.cfg.TrackerName),
		Updates:     updates,
	}

	out, err := retry.DoWithData(
		func() (*location.BatchUpdateDevicePositionOutput, error) {
			return c.api.BatchUpdateDevicePosition(ctx, input)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.MaxRetries)),
		retry.Delay(c.cfg.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			c.logger.Warn().
				Err(err).
				Uint("attempt", attempt+1).
				Str("tracker", c.cfg.TrackerName).
				Msg("Batch position update attempt failed")
		}),
	)
	if err != nil {
		return nil, &UpdateError{Attempts: c.cfg.MaxRetries, Err: err}
	}

	c.logger.Info().
		Str("device_id", deviceID).
		Str("tracker", c.cfg.TrackerName).
		Int("samples", len(samples)).
		Msg("Batch position update uploaded")
	return out, nil
}

// UpdateDeviceLocation uploads a single sample. It is equivalent to calling
// UpdateDeviceLocations with a one-element batch.
func (c *TrackingClient) UpdateDeviceLocation(ctx context.Context, sample LocationSample) (*location.BatchUpdateDevicePositionOutput, error) {
	return c.UpdateDeviceLocations(ctx, []LocationSample{sample})
}

// GetDeviceLocation fetches the last known position recorded for this device
// under the configured tracker. Exactly one call is made, with no retry.
func (c *TrackingClient) GetDeviceLocation(ctx context.Context) (*location.GetDevicePositionOutput, error) {
	if c.api == nil {
		return nil, ErrMissingClient
	}

	out, err := c.api.GetDevicePosition(ctx, &location.GetDevicePositionInput{
		TrackerName: aws.String(c.cfg.TrackerName),
		DeviceId:    aws.String(c.deviceInfo.GetDeviceID()),
	})
	if err != nil {
		return nil, fmt.Errorf("get device position: %w", err)
	}
	return out, nil
}

// EvaluateGeofences evaluates the given samples against a geofence collection
// for the given device. Records are stamped with the call time rather than
// the sample timestamps, and each carries the region and id parsed from
// identityID as position properties. An empty collectionName falls back to
// the configured default. Exactly one call is made, with no retry.
func (c *TrackingClient) EvaluateGeofences(ctx context.Context, samples []LocationSample, deviceID, identityID, collectionName string) (*location.BatchEvaluateGeofencesOutput, error) {
	if c.api == nil {
		return nil, ErrMissingClient
	}

	region, id, err := splitIdentityID(identityID)
	if err != nil {
		return nil, err
	}
	if collectionName == "" {
		collectionName = c.cfg.GeofenceCollection
	}

	now := time.Now()
	props := map[string]string{
		"region": region,
		"id":     id,
	}
	updates := make([]types.DevicePositionUpdate, 0, len(samples))
	for _, s := range samples {
		updates = append(updates, positionUpdate(deviceID, s, now, props))
	}

	out, err := c.api.BatchEvaluateGeofences(ctx, &location.BatchEvaluateGeofencesInput{
		CollectionName:        aws.String(collectionName),
		DevicePositionUpdates: updates,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate geofences against %q: %w", collectionName, err)
	}

	c.logger.Info().
		Str("device_id", deviceID).
		Str("collection", collectionName).
		Int("samples", len(samples)).
		Msg("Geofence evaluation submitted")
	return out, nil
}

// splitIdentityID splits a Cognito identity id of the form "region:id" on the
// first separator.
func splitIdentityID(identityID string) (region, id string, err error) {
	before, after, found := strings.Cut(identityID, ":")
	if !found || before == "" || after == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedIdentity, identityID)
	}
	return before, after, nil
}
