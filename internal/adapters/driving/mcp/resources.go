package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for basket resources.
	uriScheme = "basket://"

	itemsURI = uriScheme + "items"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         itemsURI,
		Name:        "items",
		Description: "The shopping list in display order",
		MIMEType:    "application/json",
	}, s.handleItemsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: itemsURI + "/{id}",
		Name:        "item",
		Description: "A single shopping list item",
		MIMEType:    "application/json",
	}, s.handleItemResource)
}

// handleItemsResource returns the grouped shopping list.
func (s *Server) handleItemsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	groups, err := s.ports.Items.Grouped(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	items := groups.Ordered()
	out := make([]ItemOutput, len(items))
	for i := range items {
		out[i] = toItemOutput(items[i])
	}
	return jsonResult(req.Params.URI, out)
}

// handleItemResource returns one item.
func (s *Server) handleItemResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractItemID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	item, err := s.ports.Items.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return jsonResult(req.Params.URI, toItemOutput(*item))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractItemID extracts the item ID from a URI like basket://items/{id}.
func extractItemID(uri string) (int64, bool) {
	const prefix = itemsURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
