package blobkit

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Mapper translates between the public URL namespace and the filesystem
// namespace. It is pure and stateless: all methods derive their results from
// the two configured roots (storage root and public base URL) and their
// arguments.
//
// Three address forms are handled for the same resource:
//
//   - absolute URL:      https://localhost:5001/assets/catalog/printer.txt
//   - site-relative URL: /catalog/printer.txt
//   - bare relative URL: catalog/printer.txt
//
// All three resolve to the same filesystem path under the storage root.
type Mapper struct {
	root    string // absolute storage root, trailing separators stripped
	baseURL string // public base URL, trailing slash stripped; may be empty
}

// NewMapper creates a Mapper anchored to the given storage root and public
// base URL. The root has backslash separators normalized to the platform
// separator and trailing separators stripped; the base URL has its trailing
// slash stripped. An empty base URL makes URL-to-path mapping an identity on
// the relative portion.
func NewMapper(storageRoot, publicBaseURL string) *Mapper {
	return &Mapper{
		root:    NormalizeRoot(storageRoot),
		baseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// NormalizeRoot converts backslash separators to the platform separator and
// strips trailing separators from a storage root path.
func NormalizeRoot(root string) string {
	sep := string(os.PathSeparator)
	root = strings.ReplaceAll(root, "\\", sep)
	root = strings.ReplaceAll(root, "/", sep)
	return strings.TrimRight(root, sep)
}

// Root returns the normalized storage root.
func (m *Mapper) Root() string {
	return m.root
}

// BaseURL returns the normalized public base URL, which may be empty.
func (m *Mapper) BaseURL() string {
	return m.baseURL
}

// ResolvePath maps a blob URL to its filesystem path under the storage root.
// The input may be an absolute URL, a site-relative URL, or a bare relative
// URL; an empty input resolves to the storage root itself. Query strings are
// never part of filesystem paths and are dropped. The result is not
// validated against the sandbox; callers must check WithinRoot before
// touching the filesystem.
func (m *Mapper) ResolvePath(rawURL string) string {
	if rawURL == "" {
		return m.root
	}

	rel := rawURL
	if i := strings.IndexByte(rel, '?'); i >= 0 {
		rel = rel[:i]
	}
	if m.baseURL != "" && strings.HasPrefix(rel, m.baseURL) {
		rel = rel[len(m.baseURL):]
	}
	if unescaped, err := url.PathUnescape(rel); err == nil {
		rel = unescaped
	}

	sep := string(os.PathSeparator)
	rel = strings.ReplaceAll(rel, "/", sep)

	return collapseSeparators(m.root + sep + rel)
}

// ToURL maps a filesystem directory path back to its absolute URL. If
// fileName is non-empty it is percent-encoded as a single path segment and
// appended with exactly one separating slash, so reserved and space
// characters in names are escaped without corrupting already-encoded path
// segments.
func (m *Mapper) ToURL(dirPath, fileName string) string {
	rel := strings.TrimPrefix(dirPath, m.root)
	rel = strings.ReplaceAll(rel, string(os.PathSeparator), "/")

	u := m.baseURL + rel
	if fileName != "" {
		u = strings.TrimSuffix(u, "/") + "/" + url.PathEscape(fileName)
	}
	return u
}

// ToRelativeURL strips the public base URL prefix from an absolute URL. It
// is a no-op when no base URL is configured or the URL does not carry the
// prefix.
func (m *Mapper) ToRelativeURL(absoluteURL string) string {
	if m.baseURL == "" {
		return absoluteURL
	}
	return strings.TrimPrefix(absoluteURL, m.baseURL)
}

// NormalizeURL converts a blob URL in any accepted form to its canonical
// absolute form.
//
// An input that already parses as an absolute URI is returned in its
// canonical escaped form. The leading slash is stripped before that check so
// a rooted local path is not misread as an absolute URI. Anything else is
// resolved as a relative reference against the base URL: path segments are
// percent-encoded exactly once (already-escaped sequences are preserved, not
// double-escaped) and query strings are carried through untouched. If the
// input cannot be parsed at all it is returned unchanged.
func (m *Mapper) NormalizeURL(rawURL string) string {
	if rawURL == "" || m.baseURL == "" {
		return rawURL
	}

	if u, err := url.Parse(strings.TrimPrefix(rawURL, "/")); err == nil && u.IsAbs() && u.Host != "" {
		return u.String()
	}

	rel := rawURL
	if strings.HasPrefix(rel, "/") {
		rel = "." + rel
	} else if !strings.HasPrefix(rel, "./") {
		rel = "./" + rel
	}

	base, err := url.Parse(m.baseURL + "/")
	if err != nil {
		return rawURL
	}
	ref, err := url.Parse(rel)
	if err != nil {
		return rawURL
	}
	return base.ResolveReference(ref).String()
}

// WithinRoot reports whether a resolved filesystem path stays inside the
// storage root after relative segments are collapsed. This is the sandbox
// boundary: every path handed to the filesystem must pass this check first.
func (m *Mapper) WithinRoot(path string) bool {
	rel, err := filepath.Rel(m.root, filepath.Clean(path))
	if err != nil {
		return false
	}
	return !filepath.IsAbs(rel) && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// collapseSeparators removes doubled path separators produced by joins.
func collapseSeparators(p string) string {
	sep := string(os.PathSeparator)
	for strings.Contains(p, sep+sep) {
		p = strings.ReplaceAll(p, sep+sep, sep)
	}
	return p
}
