package blobkit

import (
	"context"
	"errors"
	"io"
)

// ErrReadOnly is returned when a mutating operation is attempted on a
// read-only store view.
var ErrReadOnly = errors.New("blob store is read-only")

// ReadOnlyStore wraps a BlobStore and rejects every mutating operation with
// ErrReadOnly while delegating reads unchanged. Useful for handing a store to
// code that must not modify it, enforced at runtime in addition to the
// compile-time narrowing BlobReader provides.
type ReadOnlyStore struct {
	store BlobStore
}

// NewReadOnlyStore creates a read-only view over store.
func NewReadOnlyStore(store BlobStore) *ReadOnlyStore {
	return &ReadOnlyStore{store: store}
}

func (r *ReadOnlyStore) Exists(ctx context.Context, url string) (bool, error) {
	return r.store.Exists(ctx, url)
}

func (r *ReadOnlyStore) GetInfo(ctx context.Context, url string) (*BlobInfo, error) {
	return r.store.GetInfo(ctx, url)
}

func (r *ReadOnlyStore) OpenRead(ctx context.Context, url string) (io.ReadCloser, error) {
	return r.store.OpenRead(ctx, url)
}

func (r *ReadOnlyStore) Search(ctx context.Context, folderURL, keyword string) (*SearchResult, error) {
	return r.store.Search(ctx, folderURL, keyword)
}

func (r *ReadOnlyStore) OpenWrite(ctx context.Context, url string) (*WriteStream, error) {
	return nil, &PathError{Op: "write", Path: url, Err: ErrReadOnly}
}

func (r *ReadOnlyStore) CreateFolder(ctx context.Context, folder *BlobFolder) error {
	name := ""
	if folder != nil {
		name = folder.Name
	}
	return &PathError{Op: "createfolder", Path: name, Err: ErrReadOnly}
}

func (r *ReadOnlyStore) Remove(ctx context.Context, urls []string) error {
	return &PathError{Op: "remove", Path: "", Err: ErrReadOnly}
}

// Checksum passes through when the underlying store supports it; checksums
// do not mutate state.
func (r *ReadOnlyStore) Checksum(ctx context.Context, url string, algorithm ChecksumAlgorithm) (string, error) {
	if cs, ok := r.store.(CanChecksum); ok {
		return cs.Checksum(ctx, url, algorithm)
	}
	return "", &PathError{Op: "checksum", Path: url, Err: ErrNotSupported}
}

func (r *ReadOnlyStore) Checksums(ctx context.Context, url string, algorithms []ChecksumAlgorithm) (map[ChecksumAlgorithm]string, error) {
	if cs, ok := r.store.(CanChecksum); ok {
		return cs.Checksums(ctx, url, algorithms)
	}
	return nil, &PathError{Op: "checksums", Path: url, Err: ErrNotSupported}
}

var (
	_ BlobStore   = (*ReadOnlyStore)(nil)
	_ CanChecksum = (*ReadOnlyStore)(nil)
)
