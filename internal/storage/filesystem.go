package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hk4crprasad/quotes/internal/domain"
)

// FileStore persists artifacts onto the local filesystem. It is the legacy
// store, superseded by BlobStore, and is intended for development and test
// environments where an object storage service is not available.
type FileStore struct {
	basePath string
	fetcher  *http.Client
}

// NewFileStore initializes a FileStore rooted at basePath.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{
		basePath: basePath,
		fetcher:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Upload persists the provided bytes at the given relative key and returns a
// file URL. Keys are cleaned to prevent directory traversal.
func (s *FileStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(cleanKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("%w: ensure directory: %v", domain.ErrUploadFailed, err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write file: %v", domain.ErrUploadFailed, err)
	}
	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("%w: resolve path: %v", domain.ErrUploadFailed, err)
	}
	return "file://" + abs, nil
}

// Download copies a file URL (or fetches an http URL) into a fresh temporary
// file, matching the BlobStore contract.
func (s *FileStore) Download(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "file://") {
		return fetchToTemp(ctx, s.fetcher, url)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src, err := os.Open(strings.TrimPrefix(url, "file://"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer func() {
		_ = src.Close()
	}()
	tmp, err := os.CreateTemp("", "quotes-fetch-*.jpeg")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", domain.ErrFetchFailed, err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return tmp.Name(), nil
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.Clean(key)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}

var _ Store = (*FileStore)(nil)
