package blobkit

import (
	"context"
	"fmt"
	"io"
)

// ProgressFunc receives the cumulative number of bytes transferred so far.
type ProgressFunc func(bytesTransferred int64)

// UploadOptions tunes an Upload call.
type UploadOptions struct {
	// BufferSize is the copy chunk size in bytes. Zero selects a 32 KiB
	// default.
	BufferSize int

	// Progress, if set, is invoked after every chunk with the cumulative
	// byte count.
	Progress ProgressFunc
}

// Upload streams r into the blob at url and returns the blob's normalized
// URL. It wraps OpenWrite with chunked copying and optional progress
// reporting for large transfers.
func Upload(ctx context.Context, store BlobWriter, url string, r io.Reader, opts *UploadOptions) (string, error) {
	if opts == nil {
		opts = &UploadOptions{}
	}
	size := opts.BufferSize
	if size <= 0 {
		size = 32 * 1024
	}

	w, err := store.OpenWrite(ctx, url)
	if err != nil {
		return "", err
	}

	buf := make([]byte, size)
	var written int64
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return "", ctx.Err()
		default:
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				w.Close()
				return "", fmt.Errorf("uploading %s: %w", url, err)
			}
			written += int64(n)
			if opts.Progress != nil {
				opts.Progress(written)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			w.Close()
			return "", fmt.Errorf("uploading %s: %w", url, readErr)
		}
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("uploading %s: %w", url, err)
	}
	return w.URL(), nil
}

// Download reads the entire blob at url into memory. Callers streaming large
// blobs should use OpenRead directly.
func Download(ctx context.Context, store BlobReader, url string) ([]byte, error) {
	r, err := store.OpenRead(ctx, url)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	return data, nil
}
