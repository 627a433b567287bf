// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/basket-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewList is the shopping list (home) view.
	ViewList ViewType = iota
	// ViewCreate is the new item form.
	ViewCreate
	// ViewEdit is the edit item form.
	ViewEdit
	// ViewSettings is the settings view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewCreate:
		return "create"
	case ViewEdit:
		return "edit"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ItemsLoaded carries the grouped shopping list.
type ItemsLoaded struct {
	Groups domain.ItemGroups
	Err    error
}

// ItemSelected requests the edit view for an item.
// Only the ID travels; the edit view fetches the item itself.
type ItemSelected struct {
	ID int64
}

// ItemLoaded carries an item fetched for editing.
type ItemLoaded struct {
	Item *domain.Item
	Err  error
}

// ItemSaved signals a create or update finished.
type ItemSaved struct {
	Item *domain.Item
	Err  error
}

// ItemToggled signals the purchased flag of an item was flipped.
type ItemToggled struct {
	Item *domain.Item
	Err  error
}

// ItemDeleted signals an item was removed.
type ItemDeleted struct {
	ID  int64
	Err error
}

// StoreChanged signals the database was modified outside this view.
type StoreChanged struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
