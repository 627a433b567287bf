package mcp

import (
	"context"

	"github.com/custodia-labs/basket-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/basket-cli/internal/core/domain"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driving"
	"github.com/custodia-labs/basket-cli/internal/core/services"
)

// mockItemService is a mock implementation of driving.ItemService that
// returns fixed values.
type mockItemService struct {
	items []domain.Item
	item  *domain.Item
	err   error

	deleted []int64
}

var _ driving.ItemService = (*mockItemService)(nil)

func (m *mockItemService) List(_ context.Context) ([]domain.Item, error) {
	return m.items, m.err
}

func (m *mockItemService) Grouped(_ context.Context) (domain.ItemGroups, error) {
	if m.err != nil {
		return domain.ItemGroups{}, m.err
	}
	return domain.GroupItems(m.items), nil
}

func (m *mockItemService) Get(_ context.Context, _ int64) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockItemService) Create(_ context.Context, _ string, _ *string) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockItemService) Update(_ context.Context, _ domain.Item) error {
	return m.err
}

func (m *mockItemService) SetPurchased(_ context.Context, _ int64, _ bool) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockItemService) TogglePurchased(_ context.Context, _ int64) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockItemService) Delete(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

// newMemoryServer returns a server backed by the real service and an
// in-memory store.
func newMemoryServer() (*Server, driving.ItemService) {
	items := services.NewItemService(memory.NewItemStore())
	server, err := NewServer(&Ports{Items: items}, "test")
	if err != nil {
		panic(err)
	}
	return server, items
}
