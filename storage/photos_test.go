package storage

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadPart struct {
	filename    string
	contentType string
	content     string
}

// buildFileHeaders assembles real multipart.FileHeader values by writing and
// re-reading an actual multipart body.
func buildFileHeaders(t *testing.T, parts []uploadPart) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, p := range parts {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photos"; filename="%s"`, p.filename))
		h.Set("Content-Type", p.contentType)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte(p.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["photos"]
}

func TestSavePhotos(t *testing.T) {
	store := NewPhotoStore(t.TempDir())
	projectID, logID := uuid.New(), uuid.New()

	files := buildFileHeaders(t, []uploadPart{
		{filename: "site.jpg", contentType: "image/jpeg", content: "jpeg-bytes"},
		{filename: "crane.PNG", contentType: "image/png", content: "png-bytes"},
	})

	urls, err := store.SavePhotos(projectID, logID, files)
	require.NoError(t, err)
	require.Len(t, urls, 2)

	prefix := fmt.Sprintf("/uploads/%s/%s/", projectID, logID)
	assert.True(t, strings.HasPrefix(urls[0], prefix))
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
	assert.True(t, strings.HasSuffix(urls[1], ".PNG"))

	// The files are really on disk under the derived directory.
	for _, url := range urls {
		rel := strings.TrimPrefix(url, "/uploads/")
		data, err := os.ReadFile(filepath.Join(store.Root, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestSavePhotos_SkipsNonImages(t *testing.T) {
	store := NewPhotoStore(t.TempDir())

	files := buildFileHeaders(t, []uploadPart{
		{filename: "notes.txt", contentType: "text/plain", content: "hello"},
		{filename: "payload.bin", contentType: "application/octet-stream", content: "x"},
		{filename: "ok.jpg", contentType: "IMAGE/JPEG", content: "jpeg-bytes"},
	})

	urls, err := store.SavePhotos(uuid.New(), uuid.New(), files)
	require.NoError(t, err)
	// Only the image survives; content-type matching is case-insensitive.
	require.Len(t, urls, 1)
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
}

func TestSavePhotos_SkipsEmptyFiles(t *testing.T) {
	store := NewPhotoStore(t.TempDir())

	files := buildFileHeaders(t, []uploadPart{
		{filename: "empty.jpg", contentType: "image/jpeg", content: ""},
	})

	urls, err := store.SavePhotos(uuid.New(), uuid.New(), files)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestSavePhotos_DefaultExtension(t *testing.T) {
	store := NewPhotoStore(t.TempDir())

	files := buildFileHeaders(t, []uploadPart{
		{filename: "no-extension", contentType: "image/jpeg", content: "jpeg-bytes"},
	})

	urls, err := store.SavePhotos(uuid.New(), uuid.New(), files)
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
}

func TestSavePhotos_NoFiles(t *testing.T) {
	store := NewPhotoStore(t.TempDir())

	urls, err := store.SavePhotos(uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	assert.NotNil(t, urls)
	assert.Empty(t, urls)
}

func TestSavePhotos_RandomNames(t *testing.T) {
	store := NewPhotoStore(t.TempDir())

	files := buildFileHeaders(t, []uploadPart{
		{filename: "a.jpg", contentType: "image/jpeg", content: "one"},
		{filename: "a.jpg", contentType: "image/jpeg", content: "two"},
	})

	urls, err := store.SavePhotos(uuid.New(), uuid.New(), files)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.NotEqual(t, urls[0], urls[1])
}
