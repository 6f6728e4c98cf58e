package blobkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// Store is a URL-addressed blob store backed by a local filesystem. It
// translates public blob URLs to paths under a configured storage root,
// rejects any resolved path that escapes the root, and retries filesystem
// opens on transient failures.
//
// A Store holds no mutable state between calls beyond its immutable
// configuration, so it is safe for concurrent use without locking. Two
// concurrent writers to the same destination race at the filesystem level;
// the last writer wins.
type Store struct {
	fs       afero.Fs
	mapper   *Mapper
	policy   ExtensionPolicy
	events   Publisher
	logger   *slog.Logger
	retry    RetryPolicy
	provider string
}

// New creates a Store from cfg. The configuration is validated eagerly: a
// missing storage root or a malformed public base URL prevents construction.
// The storage root directory is created if absent.
func New(cfg *Config, opts ...Option) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("invalid config: %w", ErrInvalidArgument)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	root, err := filepath.Abs(NormalizeRoot(cfg.StorageRoot))
	if err != nil {
		return nil, fmt.Errorf("resolving storage root: %w", err)
	}

	s := &Store{
		fs:       afero.NewOsFs(),
		mapper:   NewMapper(root, cfg.PublicBaseURL),
		policy:   policyFromConfig(cfg),
		logger:   slog.Default(),
		provider: cfg.Provider,
		retry: RetryPolicy{
			Attempts:     cfg.RetryAttempts,
			InitialDelay: time.Duration(cfg.RetryInitialDelayMS) * time.Millisecond,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.fs.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return s, nil
}

// Mapper returns the path/URL mapper the store resolves through.
func (s *Store) Mapper() *Mapper {
	return s.mapper
}

// NormalizeURL implements URLResolver.
func (s *Store) NormalizeURL(rawURL string) string {
	return s.mapper.NormalizeURL(rawURL)
}

// ToRelativeURL implements URLResolver.
func (s *Store) ToRelativeURL(absoluteURL string) string {
	return s.mapper.ToRelativeURL(absoluteURL)
}

// resolve maps url to a filesystem path and enforces the storage-root
// sandbox. Every operation resolves through here before touching the
// filesystem; a path that escapes the root is a fatal, non-retried error.
func (s *Store) resolve(op, url string) (string, error) {
	path := s.mapper.ResolvePath(url)
	if !s.mapper.WithinRoot(path) {
		return "", &PathError{Op: op, Path: url, Err: ErrPathViolation}
	}
	return path, nil
}

// Exists implements BlobReader.
func (s *Store) Exists(ctx context.Context, url string) (bool, error) {
	info, err := s.GetInfo(ctx, url)
	if err != nil {
		return false, err
	}
	return info != nil, nil
}

// GetInfo implements BlobReader. It returns nil without error when no
// regular file exists at the resolved path; a directory does not count.
func (s *Store) GetInfo(ctx context.Context, url string) (*BlobInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if strings.TrimSpace(url) == "" {
		return nil, &PathError{Op: "getinfo", Path: url, Err: ErrInvalidArgument}
	}
	path, err := s.resolve("getinfo", url)
	if err != nil {
		return nil, err
	}

	fi, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &PathError{Op: "getinfo", Path: url, Err: err}
	}
	if fi.IsDir() {
		return nil, nil
	}

	return newBlobInfo(s.mapper, filepath.Dir(path), fi), nil
}

// OpenRead implements BlobReader. The open is wrapped in the retry policy:
// transient failures (sharing violations and similar) are retried with
// backoff, while a missing file fails immediately since retrying cannot
// help.
func (s *Store) OpenRead(ctx context.Context, url string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return s.openRetry(ctx, "read", url)
}

// openRetry opens the blob at url read-only through the retry policy. Only
// regular files are readable; a directory is rejected.
func (s *Store) openRetry(ctx context.Context, op, url string) (afero.File, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &PathError{Op: op, Path: url, Err: ErrInvalidArgument}
	}
	path, err := s.resolve(op, url)
	if err != nil {
		return nil, err
	}

	var f afero.File
	err = s.retry.do(ctx, s.logger, op, func() error {
		var openErr error
		f, openErr = s.fs.Open(path)
		return openErr
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &PathError{Op: op, Path: url, Err: ErrNotExist}
		}
		return nil, &PathError{Op: op, Path: url, Err: err}
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &PathError{Op: op, Path: url, Err: err}
	}
	if fi.IsDir() {
		f.Close()
		return nil, &PathError{Op: op, Path: url, Err: ErrIsDir}
	}
	return f, nil
}

// OpenWrite implements BlobWriter. The destination extension is checked
// against the extension policy before anything touches the filesystem;
// parent directories are created as needed and an existing blob is
// truncated.
func (s *Store) OpenWrite(ctx context.Context, url string) (*WriteStream, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if strings.TrimSpace(url) == "" {
		return nil, &PathError{Op: "write", Path: url, Err: ErrInvalidArgument}
	}
	path := s.mapper.ResolvePath(url)

	allowed, err := s.policy.Allowed(ctx, path)
	if err != nil {
		return nil, &PathError{Op: "write", Path: url, Err: err}
	}
	if !allowed {
		return nil, &PathError{Op: "write", Path: url, Err: fmt.Errorf("%w: %s", ErrExtensionNotAllowed, filepath.Ext(path))}
	}
	if !s.mapper.WithinRoot(path) {
		return nil, &PathError{Op: "write", Path: url, Err: ErrPathViolation}
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &PathError{Op: "write", Path: url, Err: err}
	}
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, &PathError{Op: "write", Path: url, Err: err}
	}

	return newWriteStream(f, s.mapper.NormalizeURL(url), s.provider), nil
}

// Search implements BlobReader. An absent folder yields an empty result,
// not an error. Without a keyword only immediate children are listed; with
// a keyword all descendants are walked and matched by name against
// *keyword* for folders and *keyword*.* for files. Matched folders come
// first, then files, each in enumeration order.
func (s *Store) Search(ctx context.Context, folderURL, keyword string) (*SearchResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path, err := s.resolve("search", folderURL)
	if err != nil {
		return nil, err
	}

	fi, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &SearchResult{}, nil
		}
		return nil, &PathError{Op: "search", Path: folderURL, Err: err}
	}
	if !fi.IsDir() {
		return &SearchResult{}, nil
	}

	result := &SearchResult{}
	if keyword == "" {
		entries, err := afero.ReadDir(s.fs, path)
		if err != nil {
			return nil, &PathError{Op: "search", Path: folderURL, Err: err}
		}
		for _, entry := range entries {
			if entry.IsDir() {
				result.Folders = append(result.Folders, newBlobFolder(s.mapper, filepath.Join(path, entry.Name()), entry))
			} else {
				result.Files = append(result.Files, newBlobInfo(s.mapper, path, entry))
			}
		}
	} else {
		folderGlob, err := glob.Compile("*" + keyword + "*")
		if err != nil {
			return nil, &PathError{Op: "search", Path: folderURL, Err: err}
		}
		fileGlob, err := glob.Compile("*" + keyword + "*.*")
		if err != nil {
			return nil, &PathError{Op: "search", Path: folderURL, Err: err}
		}

		walkErr := afero.Walk(s.fs, path, func(walkPath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			// Skip the searched directory itself
			if walkPath == path {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if info.IsDir() {
				if folderGlob.Match(info.Name()) {
					result.Folders = append(result.Folders, newBlobFolder(s.mapper, walkPath, info))
				}
			} else if fileGlob.Match(info.Name()) {
				result.Files = append(result.Files, newBlobInfo(s.mapper, filepath.Dir(walkPath), info))
			}
			return nil
		})
		if walkErr != nil {
			return nil, &PathError{Op: "search", Path: folderURL, Err: walkErr}
		}
	}

	result.Total = len(result.Folders) + len(result.Files)
	return result, nil
}

// CreateFolder implements BlobWriter. The target is resolved from the
// folder's ParentURL (the storage root when empty) joined with its Name.
// Idempotent if the directory already exists.
func (s *Store) CreateFolder(ctx context.Context, folder *BlobFolder) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if folder == nil {
		return &PathError{Op: "createfolder", Path: "", Err: ErrInvalidArgument}
	}

	parent := s.mapper.ResolvePath(folder.ParentURL)
	path := filepath.Join(parent, folder.Name)
	if !s.mapper.WithinRoot(path) {
		return &PathError{Op: "createfolder", Path: folder.Name, Err: ErrPathViolation}
	}

	if err := s.fs.MkdirAll(path, 0755); err != nil {
		return &PathError{Op: "createfolder", Path: folder.Name, Err: err}
	}
	return nil
}

// Remove implements BlobWriter. Blank entries are skipped; folders are
// deleted recursively. One deletion batch covering every processed URL is
// published only after all deletions succeed; a failure part way leaves
// earlier entries deleted but unnotified and propagates the error.
func (s *Store) Remove(ctx context.Context, urls []string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if urls == nil {
		return &PathError{Op: "remove", Path: "", Err: ErrInvalidArgument}
	}

	batch := make(DeletionBatch, 0, len(urls))
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			continue
		}
		path, err := s.resolve("remove", u)
		if err != nil {
			return err
		}

		fi, err := s.fs.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return &PathError{Op: "remove", Path: u, Err: ErrNotExist}
			}
			return &PathError{Op: "remove", Path: u, Err: err}
		}

		if fi.IsDir() {
			err = s.fs.RemoveAll(path)
		} else {
			err = s.fs.Remove(path)
		}
		if err != nil {
			return &PathError{Op: "remove", Path: u, Err: err}
		}

		batch = append(batch, BlobDeletedEntry{URL: s.mapper.NormalizeURL(u), Provider: s.provider})
	}

	if len(batch) > 0 && s.events != nil {
		s.events.Publish(ctx, batch)
	}
	return nil
}

// Move implements CanMove as a single atomic rename. Moving a file checks
// the destination extension against the extension policy; moving a folder
// does not. When the destination already exists, or the source does not,
// the call deliberately does nothing and returns nil; a warning is logged
// so the skipped request stays observable.
func (s *Store) Move(ctx context.Context, srcURL, destURL string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	srcPath, err := s.resolve("move", srcURL)
	if err != nil {
		return err
	}
	destPath, err := s.resolve("move", destURL)
	if err != nil {
		return err
	}
	if srcPath == destPath {
		return nil
	}

	srcInfo, err := s.fs.Stat(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("move skipped: source does not exist", "src", srcURL)
			return nil
		}
		return &PathError{Op: "move", Path: srcURL, Err: err}
	}

	if _, err := s.fs.Stat(destPath); err == nil {
		s.logger.Warn("move skipped: destination already exists", "src", srcURL, "dest", destURL)
		return nil
	} else if !os.IsNotExist(err) {
		return &PathError{Op: "move", Path: destURL, Err: err}
	}

	if !srcInfo.IsDir() {
		allowed, err := s.policy.Allowed(ctx, destPath)
		if err != nil {
			return &PathError{Op: "move", Path: destURL, Err: err}
		}
		if !allowed {
			return &PathError{Op: "move", Path: destURL, Err: fmt.Errorf("%w: %s", ErrExtensionNotAllowed, filepath.Ext(destPath))}
		}
	}

	if err := s.fs.Rename(srcPath, destPath); err != nil {
		return &PathError{Op: "move", Path: srcURL, Err: err}
	}
	return nil
}

// Copy implements CanCopy: a recursive tree copy that creates missing
// destination directories and overwrites destination files. The copy is not
// atomic: a failure part way leaves a partially copied tree. Unlike Move,
// Copy does not consult the extension policy.
func (s *Store) Copy(ctx context.Context, srcURL, destURL string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	srcPath, err := s.resolve("copy", srcURL)
	if err != nil {
		return err
	}
	destPath, err := s.resolve("copy", destURL)
	if err != nil {
		return err
	}
	if srcPath == destPath {
		return nil
	}

	if err := s.copyTree(ctx, srcPath, destPath); err != nil {
		return &PathError{Op: "copy", Path: srcURL, Err: err}
	}
	return nil
}

func (s *Store) copyTree(ctx context.Context, srcDir, destDir string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.fs.MkdirAll(destDir, 0755); err != nil {
		return err
	}
	entries, err := afero.ReadDir(s.fs, srcDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcEntry := filepath.Join(srcDir, entry.Name())
		destEntry := filepath.Join(destDir, entry.Name())
		if entry.IsDir() {
			if err := s.copyTree(ctx, srcEntry, destEntry); err != nil {
				return err
			}
			continue
		}
		if err := s.copyFile(srcEntry, destEntry); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) copyFile(src, dest string) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := s.fs.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Ensure Store implements interfaces
var (
	_ BlobStore   = (*Store)(nil)
	_ BlobReader  = (*Store)(nil)
	_ BlobWriter  = (*Store)(nil)
	_ URLResolver = (*Store)(nil)
	_ CanCopy     = (*Store)(nil)
	_ CanMove     = (*Store)(nil)
	_ CanChecksum = (*Store)(nil)
	_ CanWatch    = (*Store)(nil)
)
