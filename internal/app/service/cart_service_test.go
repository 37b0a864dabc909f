package service

import (
	"testing"

	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/internal/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartServiceTest(t *testing.T) CartService {
	t.Helper()

	catalogStore := store.NewCatalogStore(nil, nil, 0)
	catalogStore.SetSnapshot([]model.Product{
		{ID: 1, Title: "Product A", Price: 10, Category: "electronics", Image: "https://example.com/a.png"},
		{ID: 2, Title: "Product B", Price: 5, Category: "electronics", Image: "https://example.com/b.png"},
	})

	return NewCartService(store.NewCartStore(), catalogStore)
}

func TestCartService_AddToCart_CopiesProductFields(t *testing.T) {
	svc := setupCartServiceTest(t)

	view, err := svc.AddToCart("session-1", 1, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	item := view.Items[0]
	assert.Equal(t, 1, item.ProductID)
	assert.Equal(t, "Product A", item.Title)
	assert.Equal(t, "electronics", item.Category)
	assert.Equal(t, "https://example.com/a.png", item.Image)
	assert.Equal(t, 1, item.Quantity)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	svc := setupCartServiceTest(t)

	_, err := svc.AddToCart("session-1", 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddToCart_CatalogUnavailable(t *testing.T) {
	svc := NewCartService(store.NewCartStore(), store.NewCatalogStore(nil, nil, 0))

	_, err := svc.AddToCart("session-1", 1, 1)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	svc := setupCartServiceTest(t)

	_, err := svc.AddToCart("session-1", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_CountAndTotalScenario(t *testing.T) {
	svc := setupCartServiceTest(t)

	// Add product 1 (price 10) twice and product 2 (price 5) once
	_, err := svc.AddToCart("session-1", 1, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart("session-1", 1, 1)
	require.NoError(t, err)
	view, err := svc.AddToCart("session-1", 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, view.Count)
	assert.InDelta(t, 25.00, view.Total, 1e-9)
	assert.Len(t, view.Items, 2)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc := setupCartServiceTest(t)
	_, err := svc.AddToCart("session-1", 1, 1)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity("session-1", 1, 4)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].Quantity)
	assert.InDelta(t, 40.00, view.Total, 1e-9)
}

func TestCartService_UpdateQuantity_BelowOneRemoves(t *testing.T) {
	svc := setupCartServiceTest(t)
	_, err := svc.AddToCart("session-1", 1, 1)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity("session-1", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Count)
}

func TestCartService_RemoveFromCart_Idempotent(t *testing.T) {
	svc := setupCartServiceTest(t)
	_, err := svc.AddToCart("session-1", 1, 1)
	require.NoError(t, err)

	view := svc.RemoveFromCart("session-1", 1)
	assert.Empty(t, view.Items)

	view = svc.RemoveFromCart("session-1", 1)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Count)
}

func TestCartService_ClearCart(t *testing.T) {
	svc := setupCartServiceTest(t)
	_, err := svc.AddToCart("session-1", 1, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart("session-1", 2, 1)
	require.NoError(t, err)

	view := svc.ClearCart("session-1")
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Count)
	assert.InDelta(t, 0, view.Total, 1e-9)
}
