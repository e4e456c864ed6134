package utils

import (
	"time"

	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/file"
)

// Config represents the structure of the configuration file.
type Config struct {
	AWS struct {
		Region             string `yaml:"region"`              // AWS region hosting the tracker
		TrackerName        string `yaml:"tracker_name"`        // Amazon Location tracker resource name
		GeofenceCollection string `yaml:"geofence_collection"` // Geofence collection for evaluations
		IdentityID         string `yaml:"identity_id"`         // Cognito identity id ("region:id")
	} `yaml:"aws"`

	Identity struct {
		DeviceFile string `yaml:"device_file"` // Path to the device identity file
	} `yaml:"identity"`

	Tracking struct {
		Interval   time.Duration `yaml:"interval"`    // Interval between location samples (in seconds)
		MaxRetries int           `yaml:"max_retries"` // Attempts for batch position updates
		RetryDelay time.Duration `yaml:"retry_delay"` // Fixed delay between update attempts (in seconds)
		Workers    int           `yaml:"workers"`     // Upload worker pool size

		Filters struct {
			TimeThreshold     time.Duration `yaml:"time_threshold"`     // Minimum elapsed time between uploads (in seconds)
			DistanceThreshold float64       `yaml:"distance_threshold"` // Minimum movement between uploads (meters)
			AccuracyEnabled   bool          `yaml:"accuracy_enabled"`   // Drop moves within the accuracy noise floor
		} `yaml:"filters"`
	} `yaml:"tracking"`

	LocationProvider struct {
		SensorBased       bool   `yaml:"sensor_based"`    // Use GPS sensor instead of the geolocation API
		MapsAPIKey        string `yaml:"maps_api_key"`    // Google maps API Key
		ModemIndex        int    `yaml:"modem_index"`     // mmcli modem index for cell tower data
		GPSDevicePort     string `yaml:"gps_device_port"` // UNIX Port where the GPS sensor is mounted
		GPSDeviceBaudRate int    `yaml:"gps_baud_rate"`   // The Baud rate for GPS sensor
	} `yaml:"location_provider"`
}

// LoadConfig loads the YAML configuration from the specified file and applies
// defaults for the optional tracking fields.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	// Duration fields hold plain second counts in the YAML.
	config.Tracking.Interval *= time.Second
	config.Tracking.RetryDelay *= time.Second
	config.Tracking.Filters.TimeThreshold *= time.Second

	if config.Tracking.Interval <= 0 {
		config.Tracking.Interval = 30 * time.Second
	}
	if config.Tracking.MaxRetries <= 0 {
		config.Tracking.MaxRetries = 3
	}
	if config.Tracking.Workers <= 0 {
		config.Tracking.Workers = 2
	}

	return &config, nil
}
