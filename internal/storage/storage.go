package storage

import "context"

// Store is the remote media store contract the pipeline stages depend on.
// Upload overwrites at the given key, so retried uploads are safe. Download
// fetches a URL into a fresh temporary file; deleting that file is the
// caller's responsibility.
type Store interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, url string) (string, error)
}
