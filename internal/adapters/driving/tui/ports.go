// Package tui provides an interactive terminal user interface for basket.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/basket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Items manages the shopping list.
	Items driving.ItemService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// Watcher signals external changes to the store. Optional; nil
	// disables live reload.
	Watcher driven.ChangeWatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(items driving.ItemService, settings driving.SettingsService) *Ports {
	return &Ports{
		Items:    items,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Items == nil {
		return ErrMissingItemService
	}
	return nil
}
