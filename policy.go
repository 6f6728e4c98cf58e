package blobkit

import (
	"context"
	"path/filepath"
	"strings"
)

// ExtensionPolicy decides whether the file extension of a write or
// move-destination path is permitted. A false result is a fatal policy
// violation and is never retried.
type ExtensionPolicy interface {
	Allowed(ctx context.Context, path string) (bool, error)
}

// AllowAllExtensions is the policy used when no extension constraints are
// configured.
var AllowAllExtensions ExtensionPolicy = allowAll{}

type allowAll struct{}

func (allowAll) Allowed(ctx context.Context, path string) (bool, error) {
	return true, nil
}

// ExtensionRules is an allow/block-list ExtensionPolicy.
//
// Blocked extensions are rejected regardless of the allow list. If the allow
// list is empty, every extension not blocked is permitted.
type ExtensionRules struct {
	allowed map[string]struct{}
	blocked map[string]struct{}
}

// NewExtensionRules builds an ExtensionRules from extension lists. Entries
// are matched case-insensitively and must include the dot (".png").
func NewExtensionRules(allowed, blocked []string) *ExtensionRules {
	r := &ExtensionRules{
		allowed: make(map[string]struct{}, len(allowed)),
		blocked: make(map[string]struct{}, len(blocked)),
	}
	for _, ext := range allowed {
		if ext = strings.ToLower(strings.TrimSpace(ext)); ext != "" {
			r.allowed[ext] = struct{}{}
		}
	}
	for _, ext := range blocked {
		if ext = strings.ToLower(strings.TrimSpace(ext)); ext != "" {
			r.blocked[ext] = struct{}{}
		}
	}
	return r
}

func (r *ExtensionRules) Allowed(ctx context.Context, path string) (bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := r.blocked[ext]; ok {
		return false, nil
	}
	if len(r.allowed) == 0 {
		return true, nil
	}
	_, ok := r.allowed[ext]
	return ok, nil
}

// policyFromConfig builds the default extension policy from the
// comma-separated config lists. Returns AllowAllExtensions when neither list
// is set.
func policyFromConfig(cfg *Config) ExtensionPolicy {
	if cfg.AllowedExtensions == "" && cfg.BlockedExtensions == "" {
		return AllowAllExtensions
	}
	return NewExtensionRules(
		splitList(cfg.AllowedExtensions),
		splitList(cfg.BlockedExtensions),
	)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
