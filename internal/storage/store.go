// Package storage is the blob storage backing the gallery images. Blobs live
// on disk under one directory per bucket and are served as static files, so
// public URLs are a pure derivation from bucket and blob name.
package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ThumbWidth is the width of the thumbnail generated next to each uploaded
// image blob.
const ThumbWidth = 480

const thumbPrefix = "thumb_"

// Store is the process-wide blob store handle, constructed once at startup.
type Store struct {
	root    string
	baseURL string
}

// New creates the store rooted at dir. Public URLs are derived from baseURL,
// which must be the externally reachable origin of this server.
func New(dir, baseURL string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage dir not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{root: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the directory served under the public /storage route.
func (s *Store) Root() string {
	return s.root
}

// Bucket scopes blob operations to one named bucket.
func (s *Store) Bucket(name string) Bucket {
	return Bucket{store: s, name: name}
}

type Bucket struct {
	store *Store
	name  string
}

// Upload stores a blob under the given name. Uploading over an existing name
// overwrites it; names are timestamp-derived by the caller so this does not
// happen in normal operation. If the blob decodes as an image, a thumbnail is
// written next to it on a best-effort basis.
func (b Bucket) Upload(name string, r io.Reader) error {
	if err := validName(name); err != nil {
		return err
	}
	dir := filepath.Join(b.store.root, b.name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bucket %s: %w", b.name, err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create blob %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write blob %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write blob %s: %w", name, err)
	}

	b.makeThumbnail(path, name)
	return nil
}

// makeThumbnail renders a fixed-width thumbnail next to the blob. Failures
// are logged and ignored: non-image blobs simply have no thumbnail.
func (b Bucket) makeThumbnail(path, name string) {
	img, err := imaging.Open(path)
	if err != nil {
		slog.Debug("no thumbnail for blob", "bucket", b.name, "name", name, "error", err)
		return
	}
	thumb := imaging.Resize(img, ThumbWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(filepath.Dir(path), thumbPrefix+name)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		slog.Warn("failed to save thumbnail", "bucket", b.name, "name", name, "error", err)
	}
}

// PublicURL derives the publicly resolvable URL of a blob. It does not check
// that the blob exists.
func (b Bucket) PublicURL(name string) string {
	return b.store.baseURL + "/storage/" + b.name + "/" + name
}

// Remove deletes a blob and its thumbnail, if any.
func (b Bucket) Remove(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	path := filepath.Join(b.store.root, b.name, name)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove blob %s: %w", name, err)
	}
	os.Remove(filepath.Join(b.store.root, b.name, thumbPrefix+name))
	return nil
}

// validName rejects names that could escape the bucket directory.
func validName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid blob name %q", name)
	}
	return nil
}
