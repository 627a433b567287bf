package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driven"
)

// Ensure ItemStore implements the interface.
var _ driven.ItemStore = (*ItemStore)(nil)

// ItemStore is an in-memory implementation of driven.ItemStore.
// It follows the same ordering and ID rules as the SQLite store.
type ItemStore struct {
	mu     sync.RWMutex
	items  map[int64]domain.Item
	nextID int64
}

// NewItemStore creates a new in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{
		items:  make(map[int64]domain.Item),
		nextID: 1,
	}
}

// List returns all items, unpurchased first, then by ID.
func (s *ItemStore) List(_ context.Context) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, item.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Purchased != result[j].Purchased {
			return !result[i].Purchased
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Get retrieves an item by ID.
func (s *ItemStore) Get(_ context.Context, id int64) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	item = item.Clone()
	return &item, nil
}

// Insert stores an item, replacing any item with the same non-zero ID.
func (s *ItemStore) Insert(_ context.Context, item domain.Item) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == 0 {
		item.ID = s.nextID
	}
	if item.ID >= s.nextID {
		s.nextID = item.ID + 1
	}
	s.items[item.ID] = item.Clone()
	return item.ID, nil
}

// Update replaces the item with the same ID.
func (s *ItemStore) Update(_ context.Context, item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}
	s.items[item.ID] = item.Clone()
	return nil
}

// Delete removes an item.
func (s *ItemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}
