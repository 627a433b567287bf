package services

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir       = "storage.data_dir"
	keyShowImages    = "ui.show_images"
	keyConfirmDelete = "ui.confirm_delete"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(keyDataDir),
		},
		UI: domain.UISettings{
			ShowImages:    s.getBool(keyShowImages, defaults.UI.ShowImages),
			ConfirmDelete: s.getBool(keyConfirmDelete, defaults.UI.ConfirmDelete),
		},
	}, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.configStore.Set(keyDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save data_dir: %w", err)
	}
	if err := s.configStore.Set(keyShowImages, settings.UI.ShowImages); err != nil {
		return fmt.Errorf("save show_images: %w", err)
	}
	if err := s.configStore.Set(keyConfirmDelete, settings.UI.ConfirmDelete); err != nil {
		return fmt.Errorf("save confirm_delete: %w", err)
	}
	return nil
}

// SetDataDir changes the directory holding the database.
// Relative paths are made absolute; an empty path restores the default.
func (s *SettingsService) SetDataDir(dir string) error {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("%w: data directory %q: %w", domain.ErrValidationRejected, dir, err)
		}
		dir = abs
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Storage.DataDir = dir
	return s.Save(settings)
}

// SetShowImages toggles image markers in list views.
func (s *SettingsService) SetShowImages(show bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.UI.ShowImages = show
	return s.Save(settings)
}

// SetConfirmDelete toggles the CLI delete confirmation prompt.
func (s *SettingsService) SetConfirmDelete(confirm bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.UI.ConfirmDelete = confirm
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
