package services

import (
	"context"
	"errors"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"

	"github.com/ejboucher/amazon-location-tracking-sdk-go/internal/utils"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/filters"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/identity"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/location"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/tracker"
)

// TrackerService periodically samples the device position, drops fixes the
// filter chain votes against, and uploads the rest to the Amazon Location
// tracker. When an identity id and geofence collection are configured, each
// uploaded fix is also evaluated against the collection.
type TrackerService struct {
	// Configuration fields
	interval           time.Duration
	identityID         string
	geofenceCollection string

	// Dependencies
	trackingClient   *tracker.TrackingClient
	deviceInfo       identity.DeviceIDProvider
	locationProvider location.Provider
	filterChain      []filters.Filter
	workerPool       *utils.WorkerPool
	logger           zerolog.Logger

	// Internal state management
	lastUploaded cmap.ConcurrentMap[string, location.Location]
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	running      bool
}

// NewTrackerService creates a new TrackerService instance with the provided
// configuration. identityID and geofenceCollection may be empty to disable
// geofence evaluation.
func NewTrackerService(interval time.Duration, identityID, geofenceCollection string,
	trackingClient *tracker.TrackingClient, deviceInfo identity.DeviceIDProvider,
	locationProvider location.Provider, filterChain []filters.Filter,
	workerPool *utils.WorkerPool, logger zerolog.Logger) *TrackerService {
	return &TrackerService{
		interval:           interval,
		identityID:         identityID,
		geofenceCollection: geofenceCollection,
		trackingClient:     trackingClient,
		deviceInfo:         deviceInfo,
		locationProvider:   locationProvider,
		filterChain:        filterChain,
		workerPool:         workerPool,
		logger:             logger,
		lastUploaded:       cmap.New[location.Location](),
		running:            false,
	}
}

// Start initiates the TrackerService, periodically uploading device positions
// to the tracker.
func (t *TrackerService) Start() error {
	if t.running {
		t.logger.Warn().Msg("TrackerService is already running")
		return errors.New("tracker service is already running")
	}

	t.ctx, t.cancel = context.WithCancel(context.Background())
	t.running = true

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := t.trackOnce(); err != nil {
					t.logger.Error().
						Err(err).
						Msg("Failed to process location sample")
				}
			case <-t.ctx.Done():
				t.logger.Info().Msg("TrackerService is stopping")
				t.running = false
				return
			}
		}
	}()

	t.logger.Info().
		Dur("interval", t.interval).
		Str("geofence_collection", t.geofenceCollection).
		Msg("TrackerService started")
	return nil
}

// Stop gracefully stops the TrackerService, ensuring all goroutines are
// terminated.
func (t *TrackerService) Stop() error {
	if !t.running {
		t.logger.Warn().Msg("TrackerService is not running")
		return errors.New("tracker service is not running")
	}

	t.cancel()
	t.wg.Wait()

	if err := t.locationProvider.Close(); err != nil {
		t.logger.Error().Err(err).Msg("Failed to close location provider")
		return err
	}

	t.running = false
	t.logger.Info().Msg("TrackerService stopped")
	return nil
}

// trackOnce samples the provider, applies the filter chain against the last
// uploaded fix for this device, and hands passing fixes to the worker pool.
func (t *TrackerService) trackOnce() error {
	fix, err := t.locationProvider.GetLocation(t.ctx)
	if err != nil {
		return err
	}

	deviceID := t.deviceInfo.GetDeviceID()
	if previous, ok := t.lastUploaded.Get(deviceID); ok {
		if !filters.ShouldUpload(t.filterChain, previous, fix) {
			t.logger.Debug().
				Float64("lat", fix.Latitude).
				Float64("lon", fix.Longitude).
				Msg("Fix filtered out, skipping upload")
			return nil
		}
	}
	t.lastUploaded.Set(deviceID, fix)

	sample := tracker.LocationSample{
		Timestamp: fix.Time.UnixMilli(),
		Longitude: fix.Longitude,
		Latitude:  fix.Latitude,
	}

	t.workerPool.Submit(func() {
		if _, err := t.trackingClient.UpdateDeviceLocation(t.ctx, sample); err != nil {
			t.logger.Error().Err(err).Msg("Failed to upload position update")
			return
		}
		if t.identityID == "" || t.geofenceCollection == "" {
			return
		}
		if _, err := t.trackingClient.EvaluateGeofences(t.ctx, []tracker.LocationSample{sample},
			deviceID, t.identityID, t.geofenceCollection); err != nil {
			t.logger.Error().Err(err).Msg("Failed to evaluate geofences")
		}
	})
	return nil
}
