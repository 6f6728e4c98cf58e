package blobkit

import (
	"context"
	"crypto/md5"  //nolint:gosec // MD5 used for checksum verification, not security
	"crypto/sha1" //nolint:gosec // SHA1 used for checksum verification, not security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/cespare/xxhash/v2"
)

// NewHasher creates a new hash.Hash for the given algorithm.
// Returns an error if the algorithm is not supported.
func NewHasher(algorithm ChecksumAlgorithm) (hash.Hash, error) {
	switch algorithm {
	case ChecksumMD5:
		return md5.New(), nil //nolint:gosec // MD5 used for checksum verification, not security
	case ChecksumSHA1:
		return sha1.New(), nil //nolint:gosec // SHA1 used for checksum verification, not security
	case ChecksumSHA256:
		return sha256.New(), nil
	case ChecksumSHA512:
		return sha512.New(), nil
	case ChecksumCRC32:
		return crc32.NewIEEE(), nil
	case ChecksumXXHash:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported checksum algorithm: %s", ErrNotSupported, algorithm)
	}
}

// CalculateChecksum reads from the reader and calculates the checksum using
// the specified algorithm. Returns the hex-encoded checksum string.
func CalculateChecksum(r io.Reader, algorithm ChecksumAlgorithm) (string, error) {
	h, err := NewHasher(algorithm)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to calculate checksum: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// CalculateChecksums reads from the reader and calculates multiple checksums
// in a single pass. Returns a map of algorithm to hex-encoded checksum.
func CalculateChecksums(r io.Reader, algorithms []ChecksumAlgorithm) (map[ChecksumAlgorithm]string, error) {
	if len(algorithms) == 0 {
		return nil, fmt.Errorf("no algorithms specified")
	}

	hashers := make(map[ChecksumAlgorithm]hash.Hash, len(algorithms))
	writers := make([]io.Writer, 0, len(algorithms))
	for _, algo := range algorithms {
		h, err := NewHasher(algo)
		if err != nil {
			return nil, err
		}
		hashers[algo] = h
		writers = append(writers, h)
	}

	// Read the content once, writing to all hashers
	if _, err := io.Copy(io.MultiWriter(writers...), r); err != nil {
		return nil, fmt.Errorf("failed to calculate checksums: %w", err)
	}

	results := make(map[ChecksumAlgorithm]string, len(algorithms))
	for algo, h := range hashers {
		results[algo] = hex.EncodeToString(h.Sum(nil))
	}
	return results, nil
}

// Checksum implements CanChecksum. The blob is opened through the same
// retry policy as OpenRead.
func (s *Store) Checksum(ctx context.Context, url string, algorithm ChecksumAlgorithm) (string, error) {
	f, err := s.openRetry(ctx, "checksum", url)
	if err != nil {
		return "", err
	}
	defer f.Close()

	checksum, err := CalculateChecksum(f, algorithm)
	if err != nil {
		return "", &PathError{Op: "checksum", Path: url, Err: err}
	}
	return checksum, nil
}

// Checksums implements CanChecksum for multi-hash calculation in one read
// pass.
func (s *Store) Checksums(ctx context.Context, url string, algorithms []ChecksumAlgorithm) (map[ChecksumAlgorithm]string, error) {
	f, err := s.openRetry(ctx, "checksums", url)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	checksums, err := CalculateChecksums(f, algorithms)
	if err != nil {
		return nil, &PathError{Op: "checksums", Path: url, Err: err}
	}
	return checksums, nil
}

// VerifyChecksum reads a blob and verifies its checksum matches the
// expected value. This is a convenience function for integrity
// verification.
func VerifyChecksum(ctx context.Context, store CanChecksum, url, expected string, algorithm ChecksumAlgorithm) (bool, error) {
	actual, err := store.Checksum(ctx, url, algorithm)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}
