package identity

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/file"
)

// DeviceIDProvider supplies the stable per-install device identifier used to
// attribute position updates.
type DeviceIDProvider interface {
	Load() error
	GetDeviceID() string
}

// deviceIdentity is the on-disk shape of the identity file.
type deviceIdentity struct {
	ID string `json:"device_id,omitempty"`
}

// DeviceInfo keeps the device identifier in a JSON file. A missing or empty
// file provisions a fresh random id on Load, so the id stays stable for the
// lifetime of the install.
type DeviceInfo struct {
	deviceFile string
	fileOps    file.FileOperations
	logger     zerolog.Logger
	identity   deviceIdentity
}

// NewDeviceInfo initializes a new DeviceInfo backed by the given file.
func NewDeviceInfo(deviceFile string, fileOps file.FileOperations, logger zerolog.Logger) *DeviceInfo {
	return &DeviceInfo{
		deviceFile: deviceFile,
		fileOps:    fileOps,
		logger:     logger,
	}
}

// Load reads the identity file, provisioning and persisting a new UUID when
// no id has been stored yet.
func (d *DeviceInfo) Load() error {
	err := d.fileOps.ReadJsonFile(d.deviceFile, &d.identity)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if d.identity.ID != "" {
		return nil
	}

	d.identity.ID = uuid.NewString()
	d.logger.Info().
		Str("device_id", d.identity.ID).
		Str("file", d.deviceFile).
		Msg("Provisioned new device id")
	return d.fileOps.WriteJsonFile(d.deviceFile, d.identity)
}

// GetDeviceID returns the loaded device id.
func (d *DeviceInfo) GetDeviceID() string {
	return d.identity.ID
}
