package blobkit

import (
	"context"
	"testing"
)

func TestExtensionRules(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		allowed []string
		blocked []string
		path    string
		want    bool
	}{
		{
			name: "no rules permit everything",
			path: "/var/blobs/a.exe",
			want: true,
		},
		{
			name:    "allow list permits listed extension",
			allowed: []string{".png", ".jpg"},
			path:    "/var/blobs/a.png",
			want:    true,
		},
		{
			name:    "allow list rejects unlisted extension",
			allowed: []string{".png", ".jpg"},
			path:    "/var/blobs/a.exe",
			want:    false,
		},
		{
			name:    "block list rejects listed extension",
			blocked: []string{".exe"},
			path:    "/var/blobs/a.exe",
			want:    false,
		},
		{
			name:    "block wins over allow",
			allowed: []string{".exe"},
			blocked: []string{".exe"},
			path:    "/var/blobs/a.exe",
			want:    false,
		},
		{
			name:    "matching is case-insensitive",
			blocked: []string{".EXE"},
			path:    "/var/blobs/a.ExE",
			want:    false,
		},
		{
			name:    "extension-less path with allow list",
			allowed: []string{".png"},
			path:    "/var/blobs/README",
			want:    false,
		},
		{
			name:    "extension-less path with block list only",
			blocked: []string{".exe"},
			path:    "/var/blobs/README",
			want:    true,
		},
		{
			name:    "list entries are trimmed",
			allowed: []string{" .png ", ""},
			path:    "/var/blobs/a.png",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := NewExtensionRules(tt.allowed, tt.blocked)
			got, err := rules.Allowed(ctx, tt.path)
			if err != nil {
				t.Fatalf("Allowed() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Allowed(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestAllowAllExtensions(t *testing.T) {
	ok, err := AllowAllExtensions.Allowed(context.Background(), "/var/blobs/anything.exe")
	if err != nil || !ok {
		t.Errorf("AllowAllExtensions = %v, %v, want true, nil", ok, err)
	}
}

func TestPolicyFromConfig(t *testing.T) {
	cfg := testConfig()
	if p := policyFromConfig(cfg); p != AllowAllExtensions {
		t.Errorf("empty lists should yield AllowAllExtensions, got %T", p)
	}

	cfg.AllowedExtensions = ".png, .jpg"
	cfg.BlockedExtensions = ".exe"
	p := policyFromConfig(cfg)

	ctx := context.Background()
	if ok, _ := p.Allowed(ctx, "a.png"); !ok {
		t.Error("configured allow list should permit .png")
	}
	if ok, _ := p.Allowed(ctx, "a.jpg"); !ok {
		t.Error("configured allow list should permit .jpg")
	}
	if ok, _ := p.Allowed(ctx, "a.exe"); ok {
		t.Error("configured block list should reject .exe")
	}
	if ok, _ := p.Allowed(ctx, "a.gif"); ok {
		t.Error("unlisted extension should be rejected when an allow list is set")
	}
}
