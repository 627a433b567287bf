package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestServer_handleListItems(t *testing.T) {
	ctx := context.Background()
	image := "file:///milk.png"
	sample := []domain.Item{
		{ID: 1, Name: "banana", Purchased: true},
		{ID: 2, Name: "cheese"},
		{ID: 3, Name: "apple", ImageURL: &image},
		{ID: 4, Name: "dates", Purchased: true},
	}

	t.Run("grouped order", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{items: sample}}, "test")
		require.NoError(t, err)

		_, output, err := server.handleListItems(ctx, nil, ListItemsInput{})

		require.NoError(t, err)
		assert.Equal(t, 4, output.Count)
		assert.Equal(t, 2, output.ToBuy)
		assert.Equal(t, 2, output.InCart)

		var ids []int64
		for _, it := range output.Items {
			ids = append(ids, it.ID)
		}
		assert.Equal(t, []int64{3, 2, 4, 1}, ids)
		assert.Equal(t, "file:///milk.png", output.Items[0].ImageURL)
	})

	t.Run("raw order", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{items: sample}}, "test")
		require.NoError(t, err)

		_, output, err := server.handleListItems(ctx, nil, ListItemsInput{Raw: true})

		require.NoError(t, err)
		assert.Equal(t, int64(1), output.Items[0].ID)
		assert.Equal(t, 2, output.InCart)
	})

	t.Run("empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{}}, "test")
		require.NoError(t, err)

		_, output, err := server.handleListItems(ctx, nil, ListItemsInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Items)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{err: domain.ErrStoreUnavailable}}, "test")
		require.NoError(t, err)

		_, _, err = server.handleListItems(ctx, nil, ListItemsInput{})

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestServer_handleAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds item", func(t *testing.T) {
		server, items := newMemoryServer()

		_, output, err := server.handleAddItem(ctx, nil, AddItemInput{Name: " eggs ", ImageURL: "/tmp/eggs.png"})

		require.NoError(t, err)
		assert.Equal(t, "eggs", output.Name)
		assert.False(t, output.Purchased)
		assert.Equal(t, "file:///tmp/eggs.png", output.ImageURL)

		stored, err := items.Get(ctx, output.ID)
		require.NoError(t, err)
		assert.Equal(t, "eggs", stored.Name)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		server, _ := newMemoryServer()

		_, _, err := server.handleAddItem(ctx, nil, AddItemInput{Name: "  "})

		assert.ErrorIs(t, err, domain.ErrValidationRejected)
	})
}

func TestServer_handleUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("updates fields", func(t *testing.T) {
		server, items := newMemoryServer()
		created, err := items.Create(ctx, "tea", strPtr("file:///tea.png"))
		require.NoError(t, err)

		_, output, err := server.handleUpdateItem(ctx, nil, UpdateItemInput{
			ID:         created.ID,
			Name:       strPtr("green tea"),
			ClearImage: true,
			Purchased:  boolPtr(true),
		})

		require.NoError(t, err)
		assert.Equal(t, ItemOutput{ID: created.ID, Name: "green tea", Purchased: true}, output)

		stored, err := items.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.ImageURL)
		assert.True(t, stored.Purchased)
	})

	t.Run("sets image", func(t *testing.T) {
		server, items := newMemoryServer()
		created, err := items.Create(ctx, "tea", nil)
		require.NoError(t, err)

		_, output, err := server.handleUpdateItem(ctx, nil, UpdateItemInput{
			ID:       created.ID,
			ImageURL: strPtr("https://example.com/tea.png"),
		})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/tea.png", output.ImageURL)
	})

	t.Run("missing item", func(t *testing.T) {
		server, _ := newMemoryServer()

		_, _, err := server.handleUpdateItem(ctx, nil, UpdateItemInput{ID: 5, Name: strPtr("x")})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("conflicting image flags", func(t *testing.T) {
		server, _ := newMemoryServer()

		_, _, err := server.handleUpdateItem(ctx, nil, UpdateItemInput{
			ID: 1, ImageURL: strPtr("x"), ClearImage: true,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("blank name rejected", func(t *testing.T) {
		server, items := newMemoryServer()
		created, err := items.Create(ctx, "tea", nil)
		require.NoError(t, err)

		_, _, err = server.handleUpdateItem(ctx, nil, UpdateItemInput{ID: created.ID, Name: strPtr(" ")})

		assert.ErrorIs(t, err, domain.ErrValidationRejected)
	})
}

func TestServer_handleToggleItem(t *testing.T) {
	ctx := context.Background()

	t.Run("toggles", func(t *testing.T) {
		server, items := newMemoryServer()
		created, err := items.Create(ctx, "bread", nil)
		require.NoError(t, err)

		_, output, err := server.handleToggleItem(ctx, nil, ItemIDInput{ID: created.ID})

		require.NoError(t, err)
		assert.True(t, output.Purchased)
	})

	t.Run("returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{err: errors.New("toggle failed")}}, "test")
		require.NoError(t, err)

		_, _, err = server.handleToggleItem(ctx, nil, ItemIDInput{ID: 1})

		assert.EqualError(t, err, "toggle failed")
	})
}

func TestServer_handleDeleteItem(t *testing.T) {
	ctx := context.Background()
	mock := &mockItemService{}
	server, err := NewServer(&Ports{Items: mock}, "test")
	require.NoError(t, err)

	_, output, err := server.handleDeleteItem(ctx, nil, ItemIDInput{ID: 7})

	require.NoError(t, err)
	assert.Equal(t, DeleteItemOutput{ID: 7, Deleted: true}, output)
	assert.Equal(t, []int64{7}, mock.deleted)
}
