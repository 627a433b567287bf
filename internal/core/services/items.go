package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driving"
	"github.com/custodia-labs/basket-cli/internal/logger"
)

// Ensure ItemService implements the interface.
var _ driving.ItemService = (*ItemService)(nil)

// ItemService manages the shopping list.
type ItemService struct {
	itemStore driven.ItemStore
}

// NewItemService creates a new item service.
func NewItemService(itemStore driven.ItemStore) *ItemService {
	return &ItemService{itemStore: itemStore}
}

// List returns all items in store order.
func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	if s.itemStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.itemStore.List(ctx)
}

// Grouped returns all items split into unpurchased and purchased groups.
func (s *ItemService) Grouped(ctx context.Context) (domain.ItemGroups, error) {
	items, err := s.List(ctx)
	if err != nil {
		return domain.ItemGroups{}, err
	}
	return domain.GroupItems(items), nil
}

// Get retrieves an item by ID.
func (s *ItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	if s.itemStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.itemStore.Get(ctx, id)
}

// Create adds a new unpurchased item and returns it as stored.
func (s *ItemService) Create(ctx context.Context, name string, imageURL *string) (*domain.Item, error) {
	if s.itemStore == nil {
		return nil, domain.ErrNotImplemented
	}

	item := domain.Item{Name: name, ImageURL: imageURL}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item = item.Clone()

	id, err := s.itemStore.Insert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	item.ID = id

	logger.Debug("created item %s", item)
	return &item, nil
}

// Update replaces the stored fields of an existing item.
func (s *ItemService) Update(ctx context.Context, item domain.Item) error {
	if s.itemStore == nil {
		return domain.ErrNotImplemented
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if err := s.itemStore.Update(ctx, item); err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	logger.Debug("updated item %s", item)
	return nil
}

// SetPurchased sets the purchased flag and returns the updated item.
func (s *ItemService) SetPurchased(ctx context.Context, id int64, purchased bool) (*domain.Item, error) {
	if s.itemStore == nil {
		return nil, domain.ErrNotImplemented
	}

	item, err := s.itemStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Purchased == purchased {
		return item, nil
	}

	item.Purchased = purchased
	if err := s.itemStore.Update(ctx, *item); err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	logger.Debug("marked item %s", item)
	return item, nil
}

// TogglePurchased flips the purchased flag and returns the updated item.
func (s *ItemService) TogglePurchased(ctx context.Context, id int64) (*domain.Item, error) {
	if s.itemStore == nil {
		return nil, domain.ErrNotImplemented
	}

	item, err := s.itemStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.SetPurchased(ctx, id, !item.Purchased)
}

// Delete removes an item. Deleting a missing item is not an error.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if s.itemStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.itemStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}
