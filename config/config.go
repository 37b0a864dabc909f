package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Cart    CartConfig
	Session SessionConfig
	Redis   RedisConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type CatalogConfig struct {
	// BaseURL is the product feed endpoint returning the full catalog as a
	// JSON array. The whole feed is pulled in one request.
	BaseURL      string
	FetchTimeout time.Duration
	// RefreshCron re-pulls the feed on a schedule; request handling never
	// refetches on its own.
	RefreshCron string
}

type CartConfig struct {
	// PageSize is the catalog page size used when the client does not ask
	// for one.
	PageSize int
}

type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
}

type RedisConfig struct {
	// Addr enables the last-good catalog cache when non-empty.
	Addr     string
	Password string
	DB       int
	// SnapshotTTL bounds how stale a cached catalog may be served.
	SnapshotTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Catalog: CatalogConfig{
			BaseURL:      getEnv("CATALOG_URL", "https://fakestoreapi.com/products"),
			FetchTimeout: parseDuration(getEnv("CATALOG_FETCH_TIMEOUT", "30s"), 30*time.Second),
			RefreshCron:  getEnv("CATALOG_REFRESH_CRON", "*/30 * * * *"),
		},
		Cart: CartConfig{
			PageSize: parseInt(getEnv("CATALOG_PAGE_SIZE", "8"), 8),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "cart_session"),
			MaxAge:     parseDuration(getEnv("SESSION_MAX_AGE", "24h"), 24*time.Hour),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", ""),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          parseInt(getEnv("REDIS_DB", "0"), 0),
			SnapshotTTL: parseDuration(getEnv("REDIS_SNAPSHOT_TTL", "12h"), 12*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
