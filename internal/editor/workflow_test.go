package editor

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KatsuoTomino/KoutaArtsite/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBlobs records every call so tests can assert ordering and counts.
type fakeBlobs struct {
	calls     []string
	uploaded  []string
	removed   []string
	uploadErr error
	removeErr error
}

func (f *fakeBlobs) Upload(name string, r io.Reader) error {
	f.calls = append(f.calls, "upload")
	if f.uploadErr != nil {
		return f.uploadErr
	}
	io.Copy(io.Discard, r)
	f.uploaded = append(f.uploaded, name)
	return nil
}

func (f *fakeBlobs) PublicURL(name string) string {
	return "http://blobs.local/b/" + name
}

func (f *fakeBlobs) Remove(name string) error {
	f.calls = append(f.calls, "remove")
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, name)
	return nil
}

// fileHeader builds a real multipart.FileHeader the way gin would hand it to
// a handler.
func fileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really an image"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

func TestSaveWithoutFile(t *testing.T) {
	blobs := &fakeBlobs{}
	flow := Workflow{Blobs: blobs}

	var persistedURL string
	url, err := flow.Save(nil, "http://blobs.local/b/old.png", func(imageURL string) error {
		persistedURL = imageURL
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "http://blobs.local/b/old.png", url)
	assert.Equal(t, "http://blobs.local/b/old.png", persistedURL)
	assert.Empty(t, blobs.calls, "no blob operations without a new file")
}

func TestSaveUploadsBeforePersist(t *testing.T) {
	blobs := &fakeBlobs{}
	flow := Workflow{Blobs: blobs}

	url, err := flow.Save(fileHeader(t, "photo.png"), "", func(imageURL string) error {
		blobs.calls = append(blobs.calls, "persist")
		assert.NotEmpty(t, imageURL, "persist must receive the resolved URL")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"upload", "persist"}, blobs.calls)
	require.Len(t, blobs.uploaded, 1)
	assert.True(t, strings.HasSuffix(blobs.uploaded[0], ".png"),
		"storage name keeps the original extension: %s", blobs.uploaded[0])
	assert.Equal(t, blobs.PublicURL(blobs.uploaded[0]), url)
	assert.Empty(t, blobs.removed, "nothing to clean up on create")
}

func TestSaveNameWithoutExtension(t *testing.T) {
	blobs := &fakeBlobs{}
	flow := Workflow{Blobs: blobs}

	_, err := flow.Save(fileHeader(t, "noext"), "", func(string) error { return nil })

	require.NoError(t, err)
	require.Len(t, blobs.uploaded, 1)
	assert.NotContains(t, blobs.uploaded[0], ".")
}

func TestSaveUploadFailureAbortsSubmit(t *testing.T) {
	blobs := &fakeBlobs{uploadErr: errors.New("bucket unavailable")}
	flow := Workflow{Blobs: blobs}

	persisted := false
	url, err := flow.Save(fileHeader(t, "photo.png"), "http://blobs.local/b/old.png", func(string) error {
		persisted = true
		return nil
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUpload))
	assert.False(t, persisted, "persist must not run after a failed upload")
	assert.Equal(t, "http://blobs.local/b/old.png", url, "row keeps the prior URL")
	assert.Empty(t, blobs.removed)
}

func TestSavePersistFailureLeavesOrphan(t *testing.T) {
	blobs := &fakeBlobs{}
	flow := Workflow{Blobs: blobs}

	url, err := flow.Save(fileHeader(t, "photo.png"), "http://blobs.local/b/old.png", func(string) error {
		return errors.New("constraint violation")
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrPersist))
	assert.Contains(t, err.Error(), "constraint violation", "backend message is surfaced")
	assert.Equal(t, "http://blobs.local/b/old.png", url)
	assert.Len(t, blobs.uploaded, 1, "new blob stays as a documented orphan")
	assert.Empty(t, blobs.removed, "old blob must survive a failed persist")
}

func TestSaveReplacementCleansUpOldBlobOnce(t *testing.T) {
	blobs := &fakeBlobs{}
	flow := Workflow{Blobs: blobs}

	_, err := flow.Save(fileHeader(t, "new.jpg"), "http://blobs.local/b/old.png", func(string) error {
		blobs.calls = append(blobs.calls, "persist")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"old.png"}, blobs.removed, "previous blob deleted exactly once")

	// Cleanup strictly follows successful persistence.
	assert.Equal(t, []string{"upload", "persist", "remove"}, blobs.calls)
}

func TestSaveCleanupFailureIsSwallowed(t *testing.T) {
	blobs := &fakeBlobs{removeErr: errors.New("blob already gone")}
	flow := Workflow{Blobs: blobs}

	url, err := flow.Save(fileHeader(t, "new.jpg"), "http://blobs.local/b/old.png", func(string) error {
		return nil
	})

	require.NoError(t, err, "cleanup failure is not a workflow failure")
	assert.Equal(t, blobs.PublicURL(blobs.uploaded[0]), url)
}
