package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hjyoon/storefront-backend/internal/app/service"
	apperrors "github.com/hjyoon/storefront-backend/internal/errors"
	"github.com/hjyoon/storefront-backend/internal/middleware"
)

type ProductController struct {
	catalogService service.CatalogService
}

func NewProductController(catalogService service.CatalogService) *ProductController {
	return &ProductController{
		catalogService: catalogService,
	}
}

// GetProducts returns one filtered, paginated page of the catalog
// GET /api/v1/products?category=&max_price=&search=&page=&page_size=
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ListOptions{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	if raw := c.Query("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxPrice < 0 {
			log.Warn("Invalid max_price filter", map[string]interface{}{
				"max_price": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "max_price must be a non-negative number")
			return
		}
		opts.MaxPrice = maxPrice
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			log.Warn("Invalid page number", map[string]interface{}{
				"page": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "page must be a positive integer")
			return
		}
		opts.Page = page
	}

	if raw := c.Query("page_size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			log.Warn("Invalid page size", map[string]interface{}{
				"page_size": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "page_size must be a positive integer")
			return
		}
		opts.PageSize = pageSize
	}

	page, err := ctrl.catalogService.ListProducts(opts)
	if err != nil {
		if errors.Is(err, service.ErrCatalogUnavailable) {
			log.Warn("Catalog not loaded yet", nil)
			apperrors.ServiceUnavailable(c, apperrors.CatalogUnavailable, "")
			return
		}
		log.Error("Failed to list products", err, nil)
		info := apperrors.ParseError(err, "catalog")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	log.Info("Products listed successfully", map[string]interface{}{
		"matched": page.TotalItems,
		"page":    page.Page,
	})

	c.JSON(http.StatusOK, gin.H{
		"products":    page.Items,
		"count":       page.TotalItems,
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total_pages": page.TotalPages,
		"window":      page.Window,
		"has_prev":    page.HasPrev,
		"has_next":    page.HasNext,
	})
}

// GetProductByID returns a product by ID
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.catalogService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.CatalogProductMissing, "Product not found")
			return
		}
		if errors.Is(err, service.ErrCatalogUnavailable) {
			log.Warn("Catalog not loaded yet", nil)
			apperrors.ServiceUnavailable(c, apperrors.CatalogUnavailable, "")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		info := apperrors.ParseError(err, "product")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetFilters returns filter metadata: categories with counts and the price
// ceiling, derived fresh from the current snapshot
// GET /api/v1/products/filters
func (ctrl *ProductController) GetFilters(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	summary, err := ctrl.catalogService.GetFilterSummary()
	if err != nil {
		if errors.Is(err, service.ErrCatalogUnavailable) {
			log.Warn("Catalog not loaded yet", nil)
			apperrors.ServiceUnavailable(c, apperrors.CatalogUnavailable, "")
			return
		}
		log.Error("Failed to fetch filter metadata", err, nil)
		info := apperrors.ParseError(err, "catalog")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": summary.Categories,
		"max_price":  summary.MaxPrice,
	})
}
