package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/internal/app/service"
	"github.com/hjyoon/storefront-backend/internal/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductControllerTest(t *testing.T, products []model.Product) *gin.Engine {
	t.Helper()

	catalogStore := store.NewCatalogStore(nil, nil, 0)
	if products != nil {
		catalogStore.SetSnapshot(products)
	}

	controller := NewProductController(service.NewCatalogService(catalogStore, 2))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products", controller.GetProducts)
	router.GET("/products/filters", controller.GetFilters)
	router.GET("/products/:id", controller.GetProductByID)

	return router
}

func catalogFixture() []model.Product {
	return []model.Product{
		{ID: 1, Title: "USB Cable", Price: 9.99, Category: "electronics"},
		{ID: 2, Title: "Gold Ring", Price: 120, Category: "jewelery"},
		{ID: 3, Title: "Phone Case", Price: 14.5, Category: "electronics"},
		{ID: 4, Title: "Silver Ring", Price: 60, Category: "jewelery"},
		{ID: 5, Title: "Monitor", Price: 199.99, Category: "electronics"},
	}
}

func TestProductController_GetProducts_FirstPage(t *testing.T) {
	router := setupProductControllerTest(t, catalogFixture())

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, float64(5), response["count"])
	assert.Equal(t, float64(1), response["page"])
	assert.Equal(t, float64(2), response["page_size"])
	assert.Equal(t, float64(3), response["total_pages"])
	assert.Equal(t, false, response["has_prev"])
	assert.Equal(t, true, response["has_next"])
	assert.Len(t, response["products"], 2)
}

func TestProductController_GetProducts_Filtered(t *testing.T) {
	router := setupProductControllerTest(t, catalogFixture())

	req := httptest.NewRequest(http.MethodGet, "/products?category=electronics&max_price=20", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, float64(2), response["count"])

	products := response["products"].([]interface{})
	ids := make([]float64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.(map[string]interface{})["id"].(float64))
	}
	assert.Equal(t, []float64{1, 3}, ids)
}

func TestProductController_GetProducts_SearchNoMatch(t *testing.T) {
	router := setupProductControllerTest(t, catalogFixture())

	req := httptest.NewRequest(http.MethodGet, "/products?search=keyboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, float64(0), response["count"])
	assert.Equal(t, float64(0), response["total_pages"])
	assert.Len(t, response["products"], 0)
}

func TestProductController_GetProducts_InvalidParams(t *testing.T) {
	router := setupProductControllerTest(t, catalogFixture())

	for _, query := range []string{
		"max_price=abc",
		"max_price=-1",
		"page=0",
		"page=x",
		"page_size=-5",
	} {
		req := httptest.NewRequest(http.MethodGet, "/products?"+query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, fmt.Sprintf("query %q", query))
	}
}

func TestProductController_GetProducts_CatalogUnavailable(t *testing.T) {
	router := setupProductControllerTest(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CATALOG_UNAVAILABLE", response["error"])
}

func TestProductController_GetProductByID_Success(t *testing.T) {
	router := setupProductControllerTest(t, catalogFixture())

	req := httptest.NewRequest(http.MethodGet, "/products/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	product := response["product"].(map[string]interface{})
	assert.Equal(t, "Phone Case", product["title"])
}

func TestProductController_GetProductByID_NotFound(t *testing.T) {
	router := setupProductControllerTest(t, catalogFixture())

	req := httptest.NewRequest(http.MethodGet, "/products/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_GetProductByID_InvalidID(t *testing.T) {
	router := setupProductControllerTest(t, catalogFixture())

	req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_GetFilters(t *testing.T) {
	router := setupProductControllerTest(t, catalogFixture())

	req := httptest.NewRequest(http.MethodGet, "/products/filters", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, float64(199.99), response["max_price"])

	categories := response["categories"].([]interface{})
	require.Len(t, categories, 2)

	first := categories[0].(map[string]interface{})
	assert.Equal(t, "electronics", first["category"])
	assert.Equal(t, float64(3), first["count"])
}
