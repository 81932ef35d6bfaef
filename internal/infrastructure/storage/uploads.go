// Package storage persists uploaded attachment files (proof images and
// work-proof evidence) to a local directory that the HTTP layer serves as
// static content. Files are keyed by upload time plus the sanitized original
// name; there is no de-duplication and no cleanup on complaint soft-delete.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/campuscare/complaint-api/internal/api/metrics"
)

// UploadStore writes multipart files into a flat directory.
type UploadStore struct {
	dir     string
	maxSize int64
}

// NewUploadStore ensures the upload directory exists and returns a store.
// maxSize caps a single file in bytes; zero means no cap.
func NewUploadStore(dir string, maxSize int64) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	return &UploadStore{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the directory served as static upload content.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save writes one multipart file and returns the stored filename, which is
// what complaint documents reference.
func (s *UploadStore) Save(fh *multipart.FileHeader, kind string) (string, error) {
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", fmt.Errorf("file %q exceeds the %d byte limit", fh.Filename, s.maxSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := StoredName(time.Now().UTC(), fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	metrics.UploadsStoredTotal.WithLabelValues(kind).Inc()
	return name, nil
}

// SaveAll stores up to max files from the slice, failing the whole batch on
// the first error.
func (s *UploadStore) SaveAll(fhs []*multipart.FileHeader, kind string, max int) ([]string, error) {
	if max > 0 && len(fhs) > max {
		return nil, fmt.Errorf("at most %d files may be uploaded", max)
	}
	names := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		name, err := s.Save(fh, kind)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// StoredName builds the on-disk filename: upload timestamp in unix
// nanoseconds, a dash, and the sanitized original base name.
func StoredName(now time.Time, original string) string {
	base := filepath.Base(original)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if base == "" || base == "." {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", now.UnixNano(), base)
}
