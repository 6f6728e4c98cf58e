package blobkit

import (
	"context"
	"testing"
	"time"
)

func newOsStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(&Config{
		StorageRoot:   t.TempDir(),
		PublicBaseURL: testBase,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func TestWatchSignalsOnMatchingWrite(t *testing.T) {
	s := newOsStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token, err := s.Watch(ctx, "*.txt")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if token.HasChanged() {
		t.Fatal("token reports changed before any write")
	}

	signalled := make(chan struct{})
	token.RegisterChangeCallback(func() { close(signalled) })

	writeBlob(t, s, "note.txt", "hello")

	select {
	case <-signalled:
	case <-time.After(5 * time.Second):
		t.Fatal("token did not signal for a matching write")
	}
	if !token.HasChanged() {
		t.Error("HasChanged = false after signal")
	}
}

func TestWatchMatchesLeafNameInSubdirectory(t *testing.T) {
	s := newOsStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pre-existing subdirectory so the watcher covers it.
	if err := s.CreateFolder(ctx, &BlobFolder{Name: "catalog"}); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	token, err := s.Watch(ctx, "*.txt")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	signalled := make(chan struct{})
	token.RegisterChangeCallback(func() { close(signalled) })

	writeBlob(t, s, "catalog/deep.txt", "x")

	select {
	case <-signalled:
	case <-time.After(5 * time.Second):
		t.Fatal("single-segment pattern did not match by leaf name below the root")
	}
}

func TestWatchStopsOnContextCancel(t *testing.T) {
	s := newOsStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	token, err := s.Watch(ctx, "*.txt")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	cancel()
	// Give the watcher goroutine time to observe cancellation and shut down.
	time.Sleep(100 * time.Millisecond)

	writeBlob(t, s, "late.txt", "x")
	time.Sleep(200 * time.Millisecond)

	if token.HasChanged() {
		t.Error("token signalled after the watch context was cancelled")
	}
}

func TestWatchInvalidPattern(t *testing.T) {
	s := newOsStore(t)

	if _, err := s.Watch(context.Background(), "["); err == nil {
		t.Error("Watch with a malformed pattern should fail")
	}
}

func TestWatchFilter(t *testing.T) {
	tests := []struct {
		pattern string
		rel     string
		want    bool
	}{
		// Single-segment patterns match by leaf name at any depth.
		{"*.txt", "a.txt", true},
		{"*.txt", "catalog/sub/b.txt", true},
		{"*.txt", "a.png", false},

		// Directory-scoped patterns stay scoped to their path.
		{"catalog/*.png", "catalog/a.png", true},
		{"catalog/*.png", "other/a.png", false},
		{"catalog/*.png", "a.png", false},
		{"catalog/*.png", "catalog/sub/a.png", false},

		// Recursive patterns.
		{"**/*.json", "a/b/c.json", true},
		{"**/*.json", "a/b/c.txt", false},
	}

	for _, tt := range tests {
		f, err := newWatchFilter(tt.pattern)
		if err != nil {
			t.Fatalf("newWatchFilter(%q) failed: %v", tt.pattern, err)
		}
		if got := f.match(tt.rel); got != tt.want {
			t.Errorf("match(%q, %q) = %v, want %v", tt.pattern, tt.rel, got, tt.want)
		}
	}

	if _, err := newWatchFilter("["); err == nil {
		t.Error("newWatchFilter with a malformed pattern should fail")
	}
}
