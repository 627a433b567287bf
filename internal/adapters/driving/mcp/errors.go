// Package mcp provides an MCP (Model Context Protocol) server adapter for basket.
// It lets assistants read and edit the shopping list.
package mcp

import "errors"

// ErrMissingItemService is returned when the item service is not provided.
var ErrMissingItemService = errors.New("mcp: item service is required")
