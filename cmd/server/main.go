package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hjyoon/storefront-backend/config"
	"github.com/hjyoon/storefront-backend/internal/app/controller"
	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/internal/app/service"
	"github.com/hjyoon/storefront-backend/internal/app/store"
	"github.com/hjyoon/storefront-backend/internal/middleware"
	"github.com/hjyoon/storefront-backend/internal/router"
	"github.com/hjyoon/storefront-backend/internal/scheduler"
	"github.com/hjyoon/storefront-backend/internal/ws"
	"github.com/hjyoon/storefront-backend/pkg/catalog"
	"github.com/hjyoon/storefront-backend/pkg/logger"
	"github.com/hjyoon/storefront-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Storefront Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"catalog_url": cfg.Catalog.BaseURL,
		"log_level":   logLevel,
	})

	// Feed client
	feedClient, err := catalog.NewClient(catalog.Config{
		BaseURL:      cfg.Catalog.BaseURL,
		FetchTimeout: cfg.Catalog.FetchTimeout,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog client", err)
	}

	// Optional last-good snapshot cache
	var snapshotCache store.SnapshotCache
	if cfg.Redis.Addr != "" {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without snapshot cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			snapshotCache = redisSnapshotCache{}
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Initialize stores
	catalogStore := store.NewCatalogStore(feedClient, snapshotCache, cfg.Redis.SnapshotTTL)
	cartStore := store.NewCartStore()

	// Initial catalog fetch. A failure here is not fatal: the API serves
	// 503 for catalog reads until the scheduler succeeds.
	fetchCtx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout)
	if err := catalogStore.Refresh(fetchCtx); err != nil {
		logger.Warn("Initial catalog fetch failed, serving unavailable until refresh", map[string]interface{}{
			"error": err.Error(),
		})
	}
	cancel()

	// WebSocket hub observes the cart store
	hub := ws.NewHub()
	go hub.Run()
	cartStore.Subscribe(hub.BroadcastCart)

	// Initialize services
	catalogService := service.NewCatalogService(catalogStore, cfg.Cart.PageSize)
	cartService := service.NewCartService(cartStore, catalogStore)
	landingService := service.NewLandingService(catalogStore)

	// Initialize controllers
	productController := controller.NewProductController(catalogService)
	cartController := controller.NewCartController(cartService, hub)
	landingController := controller.NewLandingController(landingService)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session.CookieName, cfg.Session.MaxAge)

	// Catalog refresh scheduler
	catalogScheduler := scheduler.NewCatalogScheduler(catalogStore, cfg.Catalog.RefreshCron)
	if err := catalogScheduler.Start(); err != nil {
		logger.Fatal("Failed to start catalog scheduler", err)
	}
	defer catalogScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		productController,
		cartController,
		landingController,
		sessionMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

// redisSnapshotCache adapts the package-level redis helpers to the store's
// SnapshotCache interface.
type redisSnapshotCache struct{}

func (redisSnapshotCache) CacheSnapshot(ctx context.Context, products []model.Product, ttl time.Duration) error {
	return redis.CacheSnapshot(ctx, products, ttl)
}

func (redisSnapshotCache) GetCachedSnapshot(ctx context.Context) ([]model.Product, error) {
	return redis.GetCachedSnapshot(ctx)
}
