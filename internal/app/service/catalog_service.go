package service

import (
	"errors"
	"math"
	"strings"

	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/internal/app/store"
	"github.com/hjyoon/storefront-backend/pkg/logger"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// DefaultPageSize matches the product grid of the storefront.
const DefaultPageSize = 8

// PageWindowSize is the maximum number of page buttons shown around the
// current page.
const PageWindowSize = 5

// ListOptions are the catalog browse inputs. Category "all" (or empty) and
// MaxPrice <= 0 are wildcards; Search matches title substrings case
// insensitively.
type ListOptions struct {
	Category string
	MaxPrice float64
	Search   string
	Page     int
	PageSize int
}

// Page is one page of the filtered catalog plus the navigation state the
// storefront renders around it.
type Page struct {
	Items      []model.Product `json:"items"`
	TotalItems int             `json:"total_items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	Window     []int           `json:"window"`
	HasPrev    bool            `json:"has_prev"`
	HasNext    bool            `json:"has_next"`
}

// CategoryCount pairs a category with the number of products in it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// FilterSummary is the filter metadata the storefront sidebar renders,
// derived fresh from the snapshot on every call.
type FilterSummary struct {
	Categories []CategoryCount `json:"categories"`
	MaxPrice   float64         `json:"max_price"`
}

type CatalogService interface {
	ListProducts(opts ListOptions) (Page, error)
	GetProductByID(id int) (*model.Product, error)
	GetFilterSummary() (FilterSummary, error)
}

type catalogService struct {
	catalog  *store.CatalogStore
	pageSize int
}

func NewCatalogService(catalog *store.CatalogStore, pageSize int) CatalogService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &catalogService{
		catalog:  catalog,
		pageSize: pageSize,
	}
}

func (s *catalogService) ListProducts(opts ListOptions) (Page, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category":  opts.Category,
		"max_price": opts.MaxPrice,
		"search":    opts.Search,
		"page":      opts.Page,
	})

	products, err := s.catalog.Products()
	if err != nil {
		logger.Error("Failed to list products", err)
		return Page{}, ErrCatalogUnavailable
	}

	filtered := FilterProducts(products, opts.Category, opts.MaxPrice, opts.Search)

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	page := Paginate(filtered, opts.Page, pageSize)

	logger.Info("Products listed", map[string]interface{}{
		"matched": page.TotalItems,
		"page":    page.Page,
		"pages":   page.TotalPages,
	})
	return page, nil
}

func (s *catalogService) GetProductByID(id int) (*model.Product, error) {
	product, err := s.catalog.FindByID(id)
	if err != nil {
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, ErrCatalogUnavailable
	}
	if product == nil {
		logger.Warn("Product not found", map[string]interface{}{
			"product_id": id,
		})
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) GetFilterSummary() (FilterSummary, error) {
	products, err := s.catalog.Products()
	if err != nil {
		logger.Error("Failed to fetch filter metadata", err, nil)
		return FilterSummary{}, ErrCatalogUnavailable
	}

	summary := FilterSummary{Categories: CategoryCounts(products)}
	for _, p := range products {
		if p.Price > summary.MaxPrice {
			summary.MaxPrice = p.Price
		}
	}

	logger.Debug("Filter metadata derived", map[string]interface{}{
		"category_count": len(summary.Categories),
	})
	return summary, nil
}

// FilterProducts narrows the catalog to matching products. The three
// predicates are conjunctive; the result keeps the catalog's order. Category
// "all" or "" and maxPrice <= 0 are wildcards; an empty search always passes.
func FilterProducts(products []model.Product, category string, maxPrice float64, search string) []model.Product {
	if category == "" {
		category = model.CategoryAll
	}
	if maxPrice <= 0 {
		maxPrice = math.Inf(1)
	}
	search = strings.ToLower(search)

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if category != model.CategoryAll && p.Category != category {
			continue
		}
		if p.Price > maxPrice {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// CategoryCounts derives per-category product counts, categories ordered by
// first appearance in the catalog.
func CategoryCounts(products []model.Product) []CategoryCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range products {
		if _, seen := counts[p.Category]; !seen {
			order = append(order, p.Category)
		}
		counts[p.Category]++
	}

	result := make([]CategoryCount, 0, len(order))
	for _, category := range order {
		result = append(result, CategoryCount{Category: category, Count: counts[category]})
	}
	return result
}

// Paginate slices one 1-indexed page out of items and computes the page
// number window: at most PageWindowSize consecutive pages centered on the
// current page, pulled back when the window hits either edge. Out-of-range
// pages clamp to the valid range; zero items yield zero pages.
func Paginate(items []model.Product, page, pageSize int) Page {
	totalItems := len(items)
	totalPages := (totalItems + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return Page{
		Items:      items[start:end],
		TotalItems: totalItems,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Window:     pageWindow(page, totalPages),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

func pageWindow(page, totalPages int) []int {
	if totalPages == 0 {
		return []int{}
	}

	start := page - 2
	if start < 1 {
		start = 1
	}
	end := start + PageWindowSize - 1
	if end > totalPages {
		end = totalPages
		start = end - PageWindowSize + 1
		if start < 1 {
			start = 1
		}
	}

	window := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		window = append(window, i)
	}
	return window
}
