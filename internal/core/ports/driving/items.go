package driving

import (
	"context"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
)

// ItemService manages the shopping list.
type ItemService interface {
	// List returns all items in store order (unpurchased first).
	List(ctx context.Context) ([]domain.Item, error)

	// Grouped returns all items split and ordered for display.
	Grouped(ctx context.Context) (domain.ItemGroups, error)

	// Get retrieves an item by ID.
	Get(ctx context.Context, id int64) (*domain.Item, error)

	// Create adds a new unpurchased item.
	// Blank names are rejected with domain.ErrValidationRejected.
	Create(ctx context.Context, name string, imageURL *string) (*domain.Item, error)

	// Update replaces the stored fields of an existing item.
	Update(ctx context.Context, item domain.Item) error

	// SetPurchased sets the purchased flag of an item.
	SetPurchased(ctx context.Context, id int64, purchased bool) (*domain.Item, error)

	// TogglePurchased flips the purchased flag of an item.
	TogglePurchased(ctx context.Context, id int64) (*domain.Item, error)

	// Delete removes an item. Deleting a missing item is not an error.
	Delete(ctx context.Context, id int64) error
}
