// Package storage persists uploaded daily-log photos on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// urlPrefix is where the upload root is served from.
	urlPrefix = "/uploads"

	defaultExtension = ".jpg"
)

// PhotoStore writes uploaded photos under Root, namespaced per
// (project, log) pair, and hands back the web paths they are served at.
type PhotoStore struct {
	Root string
}

func NewPhotoStore(root string) *PhotoStore {
	return &PhotoStore{Root: root}
}

// SavePhotos persists the accepted files and returns their relative web paths
// in processing order. Zero-length files and files whose declared content type
// is not image/* are silently skipped. Each stored file gets a random name
// keeping the original extension (.jpg when there is none).
//
// A write failure aborts immediately; files already written stay on disk.
func (s *PhotoStore) SavePhotos(projectID, logID uuid.UUID, files []*multipart.FileHeader) ([]string, error) {
	urls := []string{}
	if len(files) == 0 {
		return urls, nil
	}

	dir := filepath.Join(s.Root, projectID.String(), logID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	for _, file := range files {
		if file.Size <= 0 {
			continue
		}

		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
			continue
		}

		ext := filepath.Ext(file.Filename)
		if strings.TrimSpace(ext) == "" {
			ext = defaultExtension
		}

		name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
		if err := s.writeFile(file, filepath.Join(dir, name)); err != nil {
			return nil, err
		}

		urls = append(urls, path.Join(urlPrefix, projectID.String(), logID.String(), name))
	}

	return urls, nil
}

func (s *PhotoStore) writeFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open uploaded file %q: %w", file.Filename, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("write %q: %w", dst, err)
	}
	return nil
}
