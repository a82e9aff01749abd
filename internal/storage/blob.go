package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hk4crprasad/quotes/internal/domain"
)

// BlobOptions configures the S3-compatible blob store.
type BlobOptions struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	Bucket     string
	Region     string
	HTTPClient *http.Client
}

// BlobStore uploads media artifacts to an S3-compatible service and fetches
// remote URLs into temporary files.
type BlobStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
	fetcher  *http.Client
}

const downloadTimeout = 30 * time.Second

// NewBlobStore creates a MinIO-backed store.
func NewBlobStore(opts BlobOptions) (*BlobStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init blob client: %w", err)
	}
	fetcher := opts.HTTPClient
	if fetcher == nil {
		fetcher = &http.Client{Timeout: downloadTimeout}
	}
	return &BlobStore{
		client:   client,
		bucket:   opts.Bucket,
		endpoint: opts.Endpoint,
		useSSL:   opts.UseSSL,
		fetcher:  fetcher,
	}, nil
}

// EnsureBucket makes sure the media bucket exists before first use.
func (s *BlobStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Upload writes data at key, overwriting any previous object, and returns the
// durable public URL.
func (s *BlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, cleanKey, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, cleanKey), nil
}

// Download fetches url into a freshly created temporary file and returns its
// path. The caller deletes the file after use.
func (s *BlobStore) Download(ctx context.Context, url string) (string, error) {
	return fetchToTemp(ctx, s.fetcher, url)
}

func fetchToTemp(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrFetchFailed, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d for %s", domain.ErrFetchFailed, resp.StatusCode, url)
	}
	tmp, err := os.CreateTemp("", "quotes-fetch-*.jpeg")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", domain.ErrFetchFailed, err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
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

var _ Store = (*BlobStore)(nil)
