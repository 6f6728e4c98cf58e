package blobkit

import "io"

// WriteStream is a write-only byte sink bound to one destination blob. It
// associates the blob URL and the provider identity with the underlying
// sink so downstream consumers can correlate events with the write target.
// One stream is created per OpenWrite call and is spent once closed.
type WriteStream struct {
	w        io.WriteCloser
	url      string
	provider string
	closed   bool
}

func newWriteStream(w io.WriteCloser, url, provider string) *WriteStream {
	return &WriteStream{w: w, url: url, provider: provider}
}

// URL returns the absolute URL of the destination blob.
func (s *WriteStream) URL() string {
	return s.url
}

// Provider returns the identity tag of the store that opened the stream.
func (s *WriteStream) Provider() string {
	return s.provider
}

func (s *WriteStream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.w.Write(p)
}

// Close flushes and releases the underlying file. Closing twice returns
// ErrClosed.
func (s *WriteStream) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return s.w.Close()
}

var _ io.WriteCloser = (*WriteStream)(nil)
