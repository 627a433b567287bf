package driven

import (
	"context"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
)

// ItemStore persists shopping-list items.
// All methods may block on I/O.
type ItemStore interface {
	// List returns every item, unpurchased before purchased.
	List(ctx context.Context) ([]domain.Item, error)

	// Get retrieves an item by ID.
	// Returns domain.ErrNotFound if no item matches.
	Get(ctx context.Context, id int64) (*domain.Item, error)

	// Insert stores an item and returns its ID.
	// A zero ID is replaced with a freshly assigned one; an existing ID
	// replaces the stored row.
	Insert(ctx context.Context, item domain.Item) (int64, error)

	// Update replaces all fields of the item with the same ID.
	// Returns domain.ErrNotFound if no item matches.
	Update(ctx context.Context, item domain.Item) error

	// Delete removes the item with the given ID.
	// Deleting a missing ID is not an error.
	Delete(ctx context.Context, id int64) error
}
