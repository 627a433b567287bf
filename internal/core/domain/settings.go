package domain

// AppSettings holds user-configurable application settings.
type AppSettings struct {
	Storage StorageSettings
	UI      UISettings
}

// StorageSettings controls where the shopping list is kept.
type StorageSettings struct {
	// DataDir is the directory holding the database file.
	// Empty means the default (~/.basket/data).
	DataDir string
}

// UISettings controls interactive presentation.
type UISettings struct {
	// ShowImages renders an image marker next to items with an image.
	ShowImages bool

	// ConfirmDelete asks before removing an item from the CLI.
	ConfirmDelete bool
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{DataDir: ""},
		UI: UISettings{
			ShowImages:    true,
			ConfirmDelete: true,
		},
	}
}
