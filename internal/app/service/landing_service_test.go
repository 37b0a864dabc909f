package service

import (
	"testing"

	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/internal/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandingService_GetLanding(t *testing.T) {
	catalogStore := store.NewCatalogStore(nil, nil, 0)
	catalogStore.SetSnapshot([]model.Product{
		{ID: 1, Title: "A", Price: 10, Category: "electronics", Rating: &model.Rating{Rate: 3.9, Count: 120}},
		{ID: 2, Title: "B", Price: 20, Category: "jewelery", Rating: &model.Rating{Rate: 4.8, Count: 40}},
		{ID: 3, Title: "C", Price: 30, Category: "electronics", Rating: &model.Rating{Rate: 4.8, Count: 90}},
		{ID: 4, Title: "D", Price: 15, Category: "electronics"},
	})
	svc := NewLandingService(catalogStore)

	content, err := svc.GetLanding()
	require.NoError(t, err)

	assert.NotEmpty(t, content.Hero.Title)
	assert.Equal(t, "WELCOME10", content.Promo.Code)

	require.Len(t, content.Collections, 2)
	assert.Equal(t, "electronics", content.Collections[0].Category)
	assert.Equal(t, 3, content.Collections[0].Count)

	// Highest rating first, review count breaking ties, unrated last
	require.Len(t, content.Bestsellers, 3)
	assert.Equal(t, 3, content.Bestsellers[0].ID)
	assert.Equal(t, 2, content.Bestsellers[1].ID)
	assert.Equal(t, 1, content.Bestsellers[2].ID)
}

func TestLandingService_CatalogUnavailable(t *testing.T) {
	svc := NewLandingService(store.NewCatalogStore(nil, nil, 0))

	_, err := svc.GetLanding()
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}
