package blobkit

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// watchFilter matches storage-relative slash-separated paths against a watch
// pattern. A multi-segment pattern ("catalog/*.png", "**/*.json") matches
// the full relative path with '/' as separator. A single-segment pattern
// ("*.txt") additionally matches the leaf name at any depth, so callers need
// not spell "**/*.txt" for the common case.
type watchFilter struct {
	full glob.Glob
	leaf glob.Glob // nil for multi-segment patterns
}

func newWatchFilter(pattern string) (watchFilter, error) {
	full, err := glob.Compile(pattern, '/')
	if err != nil {
		return watchFilter{}, err
	}

	f := watchFilter{full: full}
	if !strings.Contains(pattern, "/") {
		leaf, err := glob.Compile(pattern)
		if err != nil {
			return watchFilter{}, err
		}
		f.leaf = leaf
	}
	return f, nil
}

func (f watchFilter) match(rel string) bool {
	if f.full.Match(rel) {
		return true
	}
	return f.leaf != nil && f.leaf.Match(path.Base(rel))
}

// Watch implements CanWatch using fsnotify for native filesystem events.
// The pattern is a glob over storage-relative slash-separated paths, e.g.
// "catalog/*.png" or "**/*.json"; a single-segment pattern like "*.txt" also
// matches by leaf name at any depth. Watching requires the OS filesystem; a
// store backed by any other afero.Fs reports ErrNotSupported.
//
// The returned token is single-use: it signals on the first matching
// create, write, rename, or delete and the watcher shuts down. The watcher
// also shuts down when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, pattern string) (ChangeToken, error) {
	switch s.fs.(type) {
	case *afero.OsFs:
	default:
		return nil, &PathError{Op: "watch", Path: pattern, Err: ErrNotSupported}
	}

	filter, err := newWatchFilter(pattern)
	if err != nil {
		return nil, &PathError{Op: "watch", Path: pattern, Err: err}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &PathError{Op: "watch", Path: pattern, Err: err}
	}
	if err := watcher.Add(s.mapper.Root()); err != nil {
		watcher.Close()
		return nil, &PathError{Op: "watch", Path: pattern, Err: err}
	}

	// fsnotify watches are not recursive; cover existing subdirectories
	// for patterns that can reach below the root.
	if strings.Contains(pattern, "/") || strings.Contains(pattern, "**") || filter.leaf != nil {
		filepath.Walk(s.mapper.Root(), func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() && p != s.mapper.Root() {
				watcher.Add(p)
			}
			return nil
		})
	}

	token := NewCallbackChangeToken()

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				rel, err := filepath.Rel(s.mapper.Root(), event.Name)
				if err != nil {
					continue
				}

				if filter.match(filepath.ToSlash(rel)) {
					token.SignalChange()
					return // Token is spent after first change
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Keep watching through transient watcher errors
			}
		}
	}()

	return token, nil
}
