package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awslocation "github.com/aws/aws-sdk-go-v2/service/location"
	"github.com/rs/zerolog"

	"github.com/ejboucher/amazon-location-tracking-sdk-go/internal/services"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/internal/utils"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/file"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/filters"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/identity"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/location"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/tracker"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	fileClient := file.NewFileService()

	cfg, err := utils.LoadConfig("configs/config.yaml", fileClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	deviceInfo := identity.NewDeviceInfo(cfg.Identity.DeviceFile, fileClient, logger)
	if err := deviceInfo.Load(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to load device identity")
	}
	logger.Info().Str("device_id", deviceInfo.GetDeviceID()).Msg("Device identity loaded")

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load AWS configuration")
	}
	locationClient := awslocation.NewFromConfig(awsCfg)

	trackingClient := tracker.NewTrackingClient(tracker.Config{
		TrackerName:        cfg.AWS.TrackerName,
		GeofenceCollection: cfg.AWS.GeofenceCollection,
		MaxRetries:         cfg.Tracking.MaxRetries,
		RetryDelay:         cfg.Tracking.RetryDelay,
	}, locationClient, deviceInfo, logger)

	provider, err := newLocationProvider(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize location provider")
	}

	workerPool := utils.NewWorkerPool(cfg.Tracking.Workers, cfg.Tracking.Workers*2)

	service := services.NewTrackerService(
		cfg.Tracking.Interval,
		cfg.AWS.IdentityID,
		cfg.AWS.GeofenceCollection,
		trackingClient,
		deviceInfo,
		provider,
		buildFilterChain(cfg),
		workerPool,
		logger,
	)

	if err := service.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start tracker service")
	}

	// Handle graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	logger.Info().Msg("Shutting down gracefully...")
	if err := service.Stop(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop tracker service")
	}
	workerPool.Shutdown()
}

// newLocationProvider picks the location source configured for this device.
func newLocationProvider(cfg *utils.Config) (location.Provider, error) {
	if cfg.LocationProvider.SensorBased {
		return location.NewGPSSensorProvider(cfg.LocationProvider.GPSDevicePort, cfg.LocationProvider.GPSDeviceBaudRate), nil
	}
	return location.NewGoogleGeolocationProvider(cfg.LocationProvider.MapsAPIKey, cfg.LocationProvider.ModemIndex)
}

// buildFilterChain assembles the upload filters enabled in the configuration.
func buildFilterChain(cfg *utils.Config) []filters.Filter {
	var chain []filters.Filter
	if d := cfg.Tracking.Filters.TimeThreshold; d > 0 {
		chain = append(chain, filters.TimeFilter{Threshold: d})
	}
	if m := cfg.Tracking.Filters.DistanceThreshold; m > 0 {
		chain = append(chain, filters.DistanceFilter{Threshold: m})
	}
	if cfg.Tracking.Filters.AccuracyEnabled {
		chain = append(chain, filters.AccuracyFilter{})
	}
	return chain
}
