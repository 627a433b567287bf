package driving

import "github.com/custodia-labs/basket-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetDataDir changes the directory holding the database.
	SetDataDir(dir string) error

	// SetShowImages toggles image markers in the list views.
	SetShowImages(show bool) error

	// SetConfirmDelete toggles the CLI delete confirmation prompt.
	SetConfirmDelete(confirm bool) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
