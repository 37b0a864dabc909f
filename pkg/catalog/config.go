package catalog

import (
	"errors"
	"net/url"
	"time"
)

// Config represents the configuration for the catalog feed client
type Config struct {
	// BaseURL is the product feed endpoint
	BaseURL string

	// FetchTimeout bounds a single feed request
	FetchTimeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("catalog base URL is required")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return errors.New("catalog base URL is not a valid URL")
	}
	return nil
}
