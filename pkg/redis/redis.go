package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hjyoon/storefront-backend/config"
	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const snapshotKey = "catalog:snapshot"

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr,
		})
		return err
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// CacheSnapshot stores the last successfully fetched catalog so a later
// startup can serve stale-but-real data while the feed is down.
func CacheSnapshot(ctx context.Context, products []model.Product, ttl time.Duration) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return err
	}

	if err := client.Set(ctx, snapshotKey, payload, ttl).Err(); err != nil {
		logger.Error("Failed to cache catalog snapshot", err, nil)
		return err
	}

	logger.Debug("Catalog snapshot cached", map[string]interface{}{
		"products": len(products),
		"ttl":      ttl.String(),
	})
	return nil
}

// GetCachedSnapshot loads the last cached catalog. A nil slice with no error
// means nothing is cached.
func GetCachedSnapshot(ctx context.Context) ([]model.Product, error) {
	payload, err := client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to load cached catalog snapshot", err, nil)
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, err
	}
	return products, nil
}
