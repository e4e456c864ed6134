package identity_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/file"
	"github.com/ejboucher/amazon-location-tracking-sdk-go/pkg/identity"
)

// failingFileOps simulates an unreadable identity file.
type failingFileOps struct{}

func (failingFileOps) IsFileExists(string) (bool, error) { return false, os.ErrPermission }
func (failingFileOps) ReadJsonFile(string, any) error    { return os.ErrPermission }
func (failingFileOps) WriteJsonFile(string, any) error   { return os.ErrPermission }
func (failingFileOps) ReadYamlFile(string, any) error    { return os.ErrPermission }

// TestDeviceInfo_ProvisionsNewID tests that a missing identity file yields a
// freshly generated UUID, persisted for later loads.
func TestDeviceInfo_ProvisionsNewID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.json")
	fileOps := file.NewFileService()

	d := identity.NewDeviceInfo(path, fileOps, zerolog.Nop())
	require.NoError(t, d.Load())

	id := d.GetDeviceID()
	assert.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	// The id must survive a reload from the same file.
	reloaded := identity.NewDeviceInfo(path, fileOps, zerolog.Nop())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, id, reloaded.GetDeviceID())
}

// TestDeviceInfo_LoadsExistingID tests that a previously stored id is used
// as-is.
func TestDeviceInfo_LoadsExistingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"device_id":"stored-device-id"}`), 0600))

	d := identity.NewDeviceInfo(path, file.NewFileService(), zerolog.Nop())
	require.NoError(t, d.Load())

	assert.Equal(t, "stored-device-id", d.GetDeviceID())
}

// TestDeviceInfo_ReadFailure tests that errors other than a missing file are
// surfaced.
func TestDeviceInfo_ReadFailure(t *testing.T) {
	d := identity.NewDeviceInfo("device.json", failingFileOps{}, zerolog.Nop())

	err := d.Load()

	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Empty(t, d.GetDeviceID())
}
