package blobkit

import (
	"context"
	"io"
	"time"
)

// BlobInfo describes one stored file. Instances are built fresh from
// filesystem attributes on every lookup and are never cached.
type BlobInfo struct {
	// Name is the leaf file name including extension.
	Name string

	// URL is the absolute URL the blob is served under.
	URL string

	// RelativeURL is URL with the public base URL prefix removed.
	RelativeURL string

	// ContentType is derived from the file extension (and content sniffing
	// as a fallback).
	ContentType string

	// Size is the file size in bytes.
	Size int64

	// CreatedOn and LastModified are UTC timestamps. Go exposes no portable
	// file birth time, so CreatedOn carries the modification time.
	CreatedOn    time.Time
	LastModified time.Time
}

// BlobFolder describes one directory under the storage root.
type BlobFolder struct {
	// Name is the leaf directory name.
	Name string

	// URL is the absolute URL of the folder.
	URL string

	// RelativeURL is URL with the public base URL prefix removed.
	RelativeURL string

	// ParentURL is the absolute URL of the parent folder, empty at the
	// storage root.
	ParentURL string

	CreatedOn    time.Time
	LastModified time.Time
}

// SearchResult is one listing: all matched folders first, then all matched
// files, each in enumeration order. Total equals the combined length.
type SearchResult struct {
	Folders []*BlobFolder
	Files   []*BlobInfo
	Total   int
}

// ============================================================================
// Core Interfaces (Interface Segregation)
// ============================================================================

// BlobReader provides read-only access to the blob store.
// Use this type in function signatures to enforce read-only at compile time.
type BlobReader interface {
	// Exists reports whether a regular file exists at the resolved path.
	Exists(ctx context.Context, url string) (bool, error)

	// GetInfo returns metadata for the blob at url, or nil if no regular
	// file exists there (directories do not count).
	GetInfo(ctx context.Context, url string) (*BlobInfo, error)

	// OpenRead opens the blob for shared, read-only access. Transient I/O
	// failures are retried; a missing file fails immediately.
	OpenRead(ctx context.Context, url string) (io.ReadCloser, error)

	// Search lists the folder at folderURL (the store root when empty).
	// Without a keyword only immediate children are returned; with a keyword
	// all descendants whose name matches *keyword* (folders) or *keyword*.*
	// (files) are returned. An absent folder yields an empty result.
	Search(ctx context.Context, folderURL, keyword string) (*SearchResult, error)
}

// BlobWriter provides mutating operations on the blob store.
type BlobWriter interface {
	// OpenWrite opens (creating or truncating) the blob at url for exclusive
	// write access, creating parent directories as needed. The destination
	// extension must pass the extension policy.
	OpenWrite(ctx context.Context, url string) (*WriteStream, error)

	// CreateFolder creates the directory described by folder, resolving its
	// target from ParentURL joined with Name. Idempotent if it exists.
	CreateFolder(ctx context.Context, folder *BlobFolder) error

	// Remove deletes every blob or folder named in urls (blank entries are
	// skipped) and publishes one deletion batch once all deletions succeed.
	Remove(ctx context.Context, urls []string) error
}

// BlobStore provides full read-write access to the blob store.
type BlobStore interface {
	BlobReader
	BlobWriter
}

// URLResolver exposes the store's URL normalization so callers can turn
// user-supplied URLs into their canonical absolute or relative forms without
// touching the filesystem.
type URLResolver interface {
	NormalizeURL(rawURL string) string
	ToRelativeURL(absoluteURL string) string
}

// ============================================================================
// Optional Capability Interfaces
// ============================================================================
// Use type assertion to check if a store supports a capability:
//
//	if mover, ok := store.(blobkit.CanMove); ok {
//	    mover.Move(ctx, src, dst)
//	}

// CanCopy indicates the store supports recursive folder copy.
type CanCopy interface {
	Copy(ctx context.Context, srcURL, destURL string) error
}

// CanMove indicates the store supports atomic rename of files and folders.
type CanMove interface {
	Move(ctx context.Context, srcURL, destURL string) error
}

// ============================================================================
// Checksum Interface
// ============================================================================

// ChecksumAlgorithm represents a supported checksum algorithm
type ChecksumAlgorithm string

const (
	// ChecksumMD5 is the MD5 hash algorithm (128-bit, fast but not cryptographically secure)
	ChecksumMD5 ChecksumAlgorithm = "md5"
	// ChecksumSHA1 is the SHA-1 hash algorithm (160-bit, legacy)
	ChecksumSHA1 ChecksumAlgorithm = "sha1"
	// ChecksumSHA256 is the SHA-256 hash algorithm (256-bit, recommended)
	ChecksumSHA256 ChecksumAlgorithm = "sha256"
	// ChecksumSHA512 is the SHA-512 hash algorithm (512-bit, most secure)
	ChecksumSHA512 ChecksumAlgorithm = "sha512"
	// ChecksumCRC32 is the CRC32 checksum (32-bit, fastest, for integrity only)
	ChecksumCRC32 ChecksumAlgorithm = "crc32"
	// ChecksumXXHash is the xxHash algorithm (64-bit, extremely fast)
	ChecksumXXHash ChecksumAlgorithm = "xxhash"
)

// CanChecksum indicates the store supports blob integrity verification.
type CanChecksum interface {
	// Checksum calculates the checksum of a blob using the specified
	// algorithm. Returns the checksum as a hex-encoded string.
	Checksum(ctx context.Context, url string, algorithm ChecksumAlgorithm) (string, error)

	// Checksums calculates multiple checksums in a single read pass.
	Checksums(ctx context.Context, url string, algorithms []ChecksumAlgorithm) (map[ChecksumAlgorithm]string, error)
}

// ============================================================================
// Change Watching Interface
// ============================================================================

// ChangeToken represents a change notification token.
//
// Consumers can either poll HasChanged or register a callback via
// RegisterChangeCallback. Check ActiveChangeCallbacks to know which approach
// is more efficient for the underlying implementation.
type ChangeToken interface {
	// HasChanged returns true if a change has occurred.
	// Once true, it remains true (tokens are single-use).
	HasChanged() bool

	// ActiveChangeCallbacks indicates if the token proactively raises
	// callbacks. If false, consumers should poll HasChanged instead.
	ActiveChangeCallbacks() bool

	// RegisterChangeCallback registers a callback to be invoked when a
	// change occurs. Returns a function to unregister the callback.
	RegisterChangeCallback(callback func()) (unregister func())
}

// CanWatch indicates the store supports file change notifications. Watching
// requires the OS filesystem; stores backed by an in-memory filesystem do
// not implement it meaningfully.
type CanWatch interface {
	// Watch creates a change token for the specified glob pattern, e.g.
	// "catalog/*.png" or "**/*.json". The token signals when any matching
	// blob is created, modified, or deleted.
	Watch(ctx context.Context, pattern string) (ChangeToken, error)
}
