package mcp

import (
	"github.com/custodia-labs/basket-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Items manages the shopping list.
	Items driving.ItemService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Items == nil {
		return ErrMissingItemService
	}
	return nil
}
