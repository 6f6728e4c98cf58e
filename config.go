package blobkit

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Filesystem directory all blobs are stored under. Created if absent.
	StorageRoot string `env:"BLOBKIT_STORAGE_ROOT,default:./storage"`

	// Absolute URL prefix blobs are served under (scheme + host + base path).
	PublicBaseURL string `env:"BLOBKIT_PUBLIC_BASE_URL"`

	// Provider identity attached to write streams and deletion events.
	Provider string `env:"BLOBKIT_PROVIDER,default:blobkit.local"`

	// Extension policy defaults (comma-separated, including the dot).
	AllowedExtensions string `env:"BLOBKIT_ALLOWED_EXTENSIONS"`
	BlockedExtensions string `env:"BLOBKIT_BLOCKED_EXTENSIONS"`

	// Transient-failure retry tuning.
	RetryAttempts       int `env:"BLOBKIT_RETRY_ATTEMPTS,default:3"`
	RetryInitialDelayMS int `env:"BLOBKIT_RETRY_INITIAL_DELAY_MS,default:50"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateConfig checks configuration validity. The store refuses to
// construct on an invalid configuration rather than failing later on the
// first operation.
func validateConfig(cfg *Config) error {
	if cfg.StorageRoot == "" {
		return errors.New("storage root is required")
	}

	if cfg.PublicBaseURL == "" {
		return errors.New("public base URL is required")
	}
	u, err := url.Parse(cfg.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("invalid public base URL %q: %w", cfg.PublicBaseURL, err)
	}
	switch u.Scheme {
	case "http", "https", "ftp":
	default:
		return fmt.Errorf("public base URL %q must use http, https or ftp", cfg.PublicBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("public base URL %q has no host", cfg.PublicBaseURL)
	}

	if cfg.RetryAttempts < 0 {
		return errors.New("retry attempts must not be negative")
	}
	if cfg.RetryInitialDelayMS < 0 {
		return errors.New("retry initial delay must not be negative")
	}

	return nil
}
