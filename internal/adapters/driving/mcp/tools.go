package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
)

// ItemOutput is the wire form of an item.
type ItemOutput struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Purchased bool   `json:"purchased"`
	ImageURL  string `json:"image_url,omitempty"`
}

func toItemOutput(item domain.Item) ItemOutput {
	return ItemOutput{
		ID:        item.ID,
		Name:      item.Name,
		Purchased: item.Purchased,
		ImageURL:  item.Image(),
	}
}

// ListItemsInput is the input schema for the list_items tool.
type ListItemsInput struct {
	Raw bool `json:"raw,omitempty" jsonschema:"return store order instead of the grouped shopping order"`
}

// ListItemsOutput is the output schema for the list_items tool.
type ListItemsOutput struct {
	Items  []ItemOutput `json:"items"`
	Count  int          `json:"count"`
	ToBuy  int          `json:"to_buy"`
	InCart int          `json:"in_cart"`
}

// AddItemInput is the input schema for the add_item tool.
type AddItemInput struct {
	Name     string `json:"name" jsonschema:"the item name"`
	ImageURL string `json:"image_url,omitempty" jsonschema:"optional image URI or file path"`
}

// UpdateItemInput is the input schema for the update_item tool.
type UpdateItemInput struct {
	ID         int64   `json:"id" jsonschema:"the item id"`
	Name       *string `json:"name,omitempty" jsonschema:"new name"`
	ImageURL   *string `json:"image_url,omitempty" jsonschema:"new image URI or file path"`
	ClearImage bool    `json:"clear_image,omitempty" jsonschema:"remove the image"`
	Purchased  *bool   `json:"purchased,omitempty" jsonschema:"set whether the item is in the cart"`
}

// ItemIDInput is the input schema for tools addressing one item.
type ItemIDInput struct {
	ID int64 `json:"id" jsonschema:"the item id"`
}

// DeleteItemOutput is the output schema for the delete_item tool.
type DeleteItemOutput struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_items",
		Description: "List the shopping list: items to buy sorted by name, then items in the cart",
	}, s.handleListItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_item",
		Description: "Add an item to the shopping list",
	}, s.handleAddItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_item",
		Description: "Change the name, image or purchased state of an item",
	}, s.handleUpdateItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "toggle_item",
		Description: "Move an item in or out of the cart",
	}, s.handleToggleItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_item",
		Description: "Remove an item from the shopping list",
	}, s.handleDeleteItem)
}

func (s *Server) handleListItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListItemsInput,
) (*mcp.CallToolResult, ListItemsOutput, error) {
	var items []domain.Item
	var groups domain.ItemGroups

	if input.Raw {
		all, err := s.ports.Items.List(ctx)
		if err != nil {
			return nil, ListItemsOutput{}, err
		}
		items = all
		groups = domain.GroupItems(all)
	} else {
		g, err := s.ports.Items.Grouped(ctx)
		if err != nil {
			return nil, ListItemsOutput{}, err
		}
		groups = g
		items = g.Ordered()
	}

	output := ListItemsOutput{
		Items:  make([]ItemOutput, len(items)),
		Count:  len(items),
		ToBuy:  len(groups.Unpurchased),
		InCart: len(groups.Purchased),
	}
	for i := range items {
		output.Items[i] = toItemOutput(items[i])
	}
	return nil, output, nil
}

func (s *Server) handleAddItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddItemInput,
) (*mcp.CallToolResult, ItemOutput, error) {
	image, err := domain.ImageRef(input.ImageURL)
	if err != nil {
		return nil, ItemOutput{}, err
	}

	item, err := s.ports.Items.Create(ctx, input.Name, image)
	if err != nil {
		return nil, ItemOutput{}, err
	}
	return nil, toItemOutput(*item), nil
}

func (s *Server) handleUpdateItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateItemInput,
) (*mcp.CallToolResult, ItemOutput, error) {
	if input.ClearImage && input.ImageURL != nil {
		return nil, ItemOutput{}, fmt.Errorf("image_url and clear_image are mutually exclusive")
	}

	item, err := s.ports.Items.Get(ctx, input.ID)
	if err != nil {
		return nil, ItemOutput{}, err
	}

	changed := false
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
		changed = true
	}
	switch {
	case input.ClearImage:
		item.ImageURL = nil
		changed = true
	case input.ImageURL != nil:
		image, err := domain.ImageRef(*input.ImageURL)
		if err != nil {
			return nil, ItemOutput{}, err
		}
		item.ImageURL = image
		changed = true
	}
	if input.Purchased != nil {
		item.Purchased = *input.Purchased
		changed = true
	}

	if changed {
		if err := s.ports.Items.Update(ctx, *item); err != nil {
			return nil, ItemOutput{}, err
		}
	}
	return nil, toItemOutput(*item), nil
}

func (s *Server) handleToggleItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDInput,
) (*mcp.CallToolResult, ItemOutput, error) {
	item, err := s.ports.Items.TogglePurchased(ctx, input.ID)
	if err != nil {
		return nil, ItemOutput{}, err
	}
	return nil, toItemOutput(*item), nil
}

func (s *Server) handleDeleteItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDInput,
) (*mcp.CallToolResult, DeleteItemOutput, error) {
	if err := s.ports.Items.Delete(ctx, input.ID); err != nil {
		return nil, DeleteItemOutput{}, err
	}
	return nil, DeleteItemOutput{ID: input.ID, Deleted: true}, nil
}
