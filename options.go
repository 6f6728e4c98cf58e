package blobkit

import (
	"log/slog"

	"github.com/spf13/afero"
)

// Option configures a Store at construction time.
type Option func(*Store)

// WithFs replaces the filesystem the store operates on. The default is the
// OS filesystem; tests typically inject afero.NewMemMapFs().
func WithFs(fs afero.Fs) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithLogger sets the logger used for retry and skipped-operation warnings.
// Logging is informational only and never affects control flow.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPublisher sets the collaborator that receives deletion batches. The
// publisher is optional; without one, deletions are simply not announced.
func WithPublisher(p Publisher) Option {
	return func(s *Store) {
		s.events = p
	}
}

// WithExtensionPolicy overrides the extension policy built from config.
func WithExtensionPolicy(p ExtensionPolicy) Option {
	return func(s *Store) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithProvider overrides the provider identity tag attached to write
// streams and deletion events.
func WithProvider(provider string) Option {
	return func(s *Store) {
		s.provider = provider
	}
}

// WithRetryPolicy overrides the transient-failure retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *Store) {
		s.retry = p
	}
}
