package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/pkg/logger"
)

// ErrCatalogUnavailable is returned while no snapshot has ever been loaded.
var ErrCatalogUnavailable = errors.New("catalog not loaded")

// Fetcher pulls the full product feed.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]model.Product, error)
}

// SnapshotCache persists the last-good catalog across restarts. Optional.
type SnapshotCache interface {
	CacheSnapshot(ctx context.Context, products []model.Product, ttl time.Duration) error
	GetCachedSnapshot(ctx context.Context) ([]model.Product, error)
}

// CatalogStore holds the in-memory catalog snapshot. Readers get the shared
// slice and must not mutate it; Refresh swaps the whole snapshot atomically.
type CatalogStore struct {
	mu        sync.RWMutex
	products  []model.Product
	loaded    bool
	fetchedAt time.Time

	fetcher  Fetcher
	cache    SnapshotCache
	cacheTTL time.Duration
}

// NewCatalogStore creates a catalog store backed by the given fetcher. The
// cache may be nil.
func NewCatalogStore(fetcher Fetcher, cache SnapshotCache, cacheTTL time.Duration) *CatalogStore {
	return &CatalogStore{
		fetcher:  fetcher,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Refresh pulls the feed and swaps the snapshot. On failure the previous
// snapshot stays in place; if nothing was ever loaded, the last-good cache
// is tried as a fallback.
func (s *CatalogStore) Refresh(ctx context.Context) error {
	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		logger.Error("Failed to refresh catalog", err, nil)
		if !s.Loaded() && s.cache != nil {
			return s.loadFromCache(ctx, err)
		}
		return err
	}

	s.swap(products)
	logger.Info("Catalog refreshed", map[string]interface{}{
		"products": len(products),
	})

	if s.cache != nil {
		if cacheErr := s.cache.CacheSnapshot(ctx, products, s.cacheTTL); cacheErr != nil {
			logger.Warn("Failed to cache catalog snapshot", map[string]interface{}{
				"error": cacheErr.Error(),
			})
		}
	}
	return nil
}

func (s *CatalogStore) loadFromCache(ctx context.Context, fetchErr error) error {
	cached, err := s.cache.GetCachedSnapshot(ctx)
	if err != nil || cached == nil {
		return fetchErr
	}

	s.swap(cached)
	logger.Warn("Serving catalog from last-good cache", map[string]interface{}{
		"products":    len(cached),
		"fetch_error": fetchErr.Error(),
	})
	return nil
}

func (s *CatalogStore) swap(products []model.Product) {
	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.fetchedAt = time.Now()
	s.mu.Unlock()
}

// Products returns the current snapshot in feed order.
func (s *CatalogStore) Products() ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrCatalogUnavailable
	}
	return s.products, nil
}

// FindByID returns the product with the given id from the snapshot.
func (s *CatalogStore) FindByID(id int) (*model.Product, error) {
	products, err := s.Products()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}

// Loaded reports whether a snapshot has ever been loaded.
func (s *CatalogStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// FetchedAt returns when the current snapshot was taken.
func (s *CatalogStore) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// SetSnapshot replaces the snapshot directly. Test seam.
func (s *CatalogStore) SetSnapshot(products []model.Product) {
	s.swap(products)
}
