package blobkit

import (
	"sync"

	"github.com/gobeaver/beaver-kit/config"
)

// Global instance
var (
	defaultStore *Store
	defaultOnce  sync.Once
	defaultErr   error
)

// Builder provides a way to create Store instances with a custom
// environment variable prefix.
type Builder struct {
	prefix string
	opts   []Option
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// WithOptions adds construction options applied by New and Init.
func (b *Builder) WithOptions(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// New creates a new Store instance using the builder's prefix
func (b *Builder) New() (*Store, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg, b.opts...)
}

// Init initializes the global Store instance using the builder's prefix
func (b *Builder) Init() error {
	store, err := b.New()
	if err != nil {
		return err
	}
	defaultOnce.Do(func() {
		defaultStore = store
	})
	return nil
}

// Init initializes the global store instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultStore, defaultErr = New(cfg)
	})

	return defaultErr
}

// Default returns the global instance, initializing it from the environment
// if needed.
func Default() (*Store, error) {
	if defaultStore == nil {
		if err := Init(); err != nil {
			return nil, err
		}
	}
	return defaultStore, nil
}

// NewFromEnv creates an instance from environment variables (convenience constructor)
func NewFromEnv(opts ...Option) (*Store, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultStore = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}
