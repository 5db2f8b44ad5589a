package source

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/mmcdole/darkroom/internal/adapter"
	"github.com/mmcdole/darkroom/internal/adapter/source/unsplash"
	"github.com/mmcdole/darkroom/internal/domain"
)

// SourceConfig contains the configuration needed to create a PhotoRepository
type SourceConfig struct {
	BaseURL   string
	AccessKey string
	Timeout   time.Duration
	UserAgent string
}

// NewClient creates a new PhotoRepository.
// This factory function abstracts away the specific backend implementation.
func NewClient(cfg *SourceConfig, logger *slog.Logger) (domain.PhotoRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.AccessKey == "" {
		return nil, domain.ErrNotConfigured
	}

	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid API base URL: %q", cfg.BaseURL)
		}
	}

	return unsplash.NewClient(cfg.BaseURL, cfg.AccessKey, cfg.UserAgent, cfg.Timeout, logger), nil
}

// NewClientFromConfig creates a PhotoRepository from the application config
func NewClientFromConfig(cfg *adapter.Config, version string, logger *slog.Logger) (domain.PhotoRepository, error) {
	return NewClient(&SourceConfig{
		BaseURL:   cfg.API.BaseURL,
		AccessKey: cfg.API.AccessKey,
		Timeout:   cfg.API.Timeout,
		UserAgent: "darkroom/" + version,
	}, logger)
}
