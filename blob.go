package blobkit

import (
	"os"
	"path/filepath"
)

// newBlobInfo builds a BlobInfo for the file fi located in the directory at
// dir. URLs are produced by the mapper in the path-to-URL direction.
func newBlobInfo(m *Mapper, dir string, fi os.FileInfo) *BlobInfo {
	u := m.ToURL(dir, fi.Name())
	mod := fi.ModTime().UTC()
	return &BlobInfo{
		Name:         fi.Name(),
		URL:          u,
		RelativeURL:  m.ToRelativeURL(u),
		ContentType:  GuessContentType(fi.Name(), nil),
		Size:         fi.Size(),
		CreatedOn:    mod,
		LastModified: mod,
	}
}

// newBlobFolder builds a BlobFolder for the directory at path. ParentURL is
// derived from the filesystem parent and left empty at the storage root.
func newBlobFolder(m *Mapper, path string, fi os.FileInfo) *BlobFolder {
	u := m.ToURL(path, "")

	parentURL := ""
	if parent := filepath.Dir(path); parent != path && m.WithinRoot(parent) {
		parentURL = m.ToURL(parent, "")
	}

	mod := fi.ModTime().UTC()
	return &BlobFolder{
		Name:         fi.Name(),
		URL:          u,
		RelativeURL:  m.ToRelativeURL(u),
		ParentURL:    parentURL,
		CreatedOn:    mod,
		LastModified: mod,
	}
}
