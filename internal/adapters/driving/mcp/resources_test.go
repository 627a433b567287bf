package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
)

func TestExtractItemID(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		want   int64
		wantOK bool
	}{
		{"valid", "basket://items/42", 42, true},
		{"wrong scheme", "file://items/42", 0, false},
		{"not a number", "basket://items/abc", 0, false},
		{"zero", "basket://items/0", 0, false},
		{"collection", "basket://items", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractItemID(tt.uri)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleItemsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns grouped items", func(t *testing.T) {
		mock := &mockItemService{items: []domain.Item{
			{ID: 1, Name: "b", Purchased: true},
			{ID: 2, Name: "a"},
		}}
		server, err := NewServer(&Ports{Items: mock}, "test")
		require.NoError(t, err)

		result, err := server.handleItemsResource(ctx, makeReadResourceRequest("basket://items"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var got []ItemOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, []ItemOutput{
			{ID: 2, Name: "a"},
			{ID: 1, Name: "b", Purchased: true},
		}, got)
	})

	t.Run("empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{}}, "test")
		require.NoError(t, err)

		result, err := server.handleItemsResource(ctx, makeReadResourceRequest("basket://items"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{err: domain.ErrStoreUnavailable}}, "test")
		require.NoError(t, err)

		_, err = server.handleItemsResource(ctx, makeReadResourceRequest("basket://items"))

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestServer_handleItemResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns item", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{item: &domain.Item{ID: 3, Name: "jam"}}}, "test")
		require.NoError(t, err)

		result, err := server.handleItemResource(ctx, makeReadResourceRequest("basket://items/3"))

		require.NoError(t, err)
		var got ItemOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, ItemOutput{ID: 3, Name: "jam"}, got)
	})

	t.Run("invalid id is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{}}, "test")
		require.NoError(t, err)

		_, err = server.handleItemResource(ctx, makeReadResourceRequest("basket://items/x"))

		assert.Error(t, err)
	})

	t.Run("missing item is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{err: domain.ErrNotFound}}, "test")
		require.NoError(t, err)

		_, err = server.handleItemResource(ctx, makeReadResourceRequest("basket://items/9"))

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{err: domain.ErrStoreUnavailable}}, "test")
		require.NoError(t, err)

		_, err = server.handleItemResource(ctx, makeReadResourceRequest("basket://items/9"))

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}
