package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
	assert.Contains(t, settingsCmd.Long, "ui.show_images")
}

func TestSettingsShowCmd_Defaults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Data dir: (default)")
	assert.Contains(t, out, "Show images: yes")
	assert.Contains(t, out, "Confirm delete: yes")
	assert.Contains(t, out, "Config file: :memory:")
}

func TestSettingsCmd_DefaultsToShow(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestSettingsSetCmd_Bool(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "set", "ui.show_images", "false")
	require.NoError(t, err)
	assert.Contains(t, out, "Set ui.show_images = false")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.False(t, settings.UI.ShowImages)
	assert.True(t, settings.UI.ConfirmDelete)
}

func TestSettingsSetCmd_ConfirmDelete(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "settings", "set", "ui.confirm_delete", "0")
	require.NoError(t, err)

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.False(t, settings.UI.ConfirmDelete)
}

func TestSettingsSetCmd_DataDir(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	dir := t.TempDir()

	_, err := execute(t, "settings", "set", "storage.data_dir", dir)
	require.NoError(t, err)

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(dir), settings.Storage.DataDir)
}

func TestSettingsSetCmd_InvalidBool(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "settings", "set", "ui.show_images", "maybe")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected true or false")
}

func TestSettingsSetCmd_UnknownKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "settings", "set", "search.mode", "hybrid")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
	assert.Contains(t, err.Error(), "ui.confirm_delete")
}

func TestSettingsCmd_ServiceNotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
