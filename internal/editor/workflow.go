// Package editor implements the record save workflow shared by the works and
// news admin forms: optional image replace, row persistence, and old-image
// cleanup, in that order.
package editor

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/KatsuoTomino/KoutaArtsite/internal/apperror"
)

// Blobs is the slice of the blob store the workflow needs: one bucket,
// dedicated to one record kind.
type Blobs interface {
	Upload(name string, r io.Reader) error
	PublicURL(name string) string
	Remove(name string) error
}

// Workflow saves a record together with its associated image. One Workflow is
// instantiated per record kind, bound to that kind's bucket.
type Workflow struct {
	Blobs Blobs
}

// Save runs one submit of the editor form.
//
// If file is non-nil, the new image is uploaded first under a
// timestamp-derived name, so persist never references a URL that does not
// exist yet. persist receives the final image URL (the old one when no file
// was selected) and performs the row insert or update. Only after persist
// succeeds is the previously stored blob deleted, best-effort: a failed
// cleanup is logged and never surfaced, since the row update is already
// authoritative.
//
// On upload failure the row is untouched. On persist failure the freshly
// uploaded blob is not rolled back; it stays as an unreferenced orphan.
//
// Save returns the image URL the row now points at.
func (w Workflow) Save(file *multipart.FileHeader, oldURL string, persist func(imageURL string) error) (string, error) {
	imageURL := oldURL
	uploaded := ""

	if file != nil {
		name := blobName(file.Filename)
		src, err := file.Open()
		if err != nil {
			return oldURL, apperror.Upload(err)
		}
		err = w.Blobs.Upload(name, src)
		src.Close()
		if err != nil {
			return oldURL, apperror.Upload(err)
		}
		uploaded = name
		imageURL = w.Blobs.PublicURL(name)
	}

	if err := persist(imageURL); err != nil {
		if uploaded != "" {
			slog.Warn("row persistence failed after image upload, blob orphaned",
				"blob", uploaded, "error", err)
		}
		return oldURL, apperror.Persist(err)
	}

	if uploaded != "" && oldURL != "" {
		old := blobNameFromURL(oldURL)
		if err := w.Blobs.Remove(old); err != nil {
			slog.Warn("failed to remove replaced image", "blob", old, "error", err)
		}
	}

	return imageURL, nil
}

// blobName derives a storage name from the upload time and the original
// file's extension, unique within normal operation.
func blobName(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return fmt.Sprintf("%d", time.Now().UnixMilli())
	}
	return fmt.Sprintf("%d.%s", time.Now().UnixMilli(), ext)
}

// blobNameFromURL recovers a blob's storage name from its public URL: the
// trailing path segment.
func blobNameFromURL(url string) string {
	return path.Base(url)
}
