package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Empty(t, settings.Storage.DataDir)
	assert.True(t, settings.UI.ShowImages)
	assert.True(t, settings.UI.ConfirmDelete)
}
