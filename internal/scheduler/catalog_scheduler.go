package scheduler

import (
	"context"
	"time"

	"github.com/hjyoon/storefront-backend/internal/app/store"
	"github.com/hjyoon/storefront-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const refreshTimeout = 60 * time.Second

// CatalogScheduler re-pulls the product feed on a cron spec so the snapshot
// tracks the feed without any per-request fetching. It is also the only
// retry path after a failed startup fetch.
type CatalogScheduler struct {
	cron    *cron.Cron
	catalog *store.CatalogStore
	spec    string
}

// NewCatalogScheduler creates a catalog refresh scheduler.
func NewCatalogScheduler(catalog *store.CatalogStore, spec string) *CatalogScheduler {
	return &CatalogScheduler{
		cron:    cron.New(),
		catalog: catalog,
		spec:    spec,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *CatalogScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting scheduled catalog refresh", nil)

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if err := s.catalog.Refresh(ctx); err != nil {
			logger.Error("Scheduled catalog refresh failed", err)
			return
		}

		logger.Info("Scheduled catalog refresh completed", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for catalog refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog refresh scheduler started", map[string]interface{}{
		"spec": s.spec,
	})

	return nil
}

// Stop stops the cron loop.
func (s *CatalogScheduler) Stop() {
	logger.Info("Stopping catalog refresh scheduler...", nil)
	s.cron.Stop()
	logger.Info("Catalog refresh scheduler stopped", nil)
}
