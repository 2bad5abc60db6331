package storage

import (
	"context"
	"io"
)

// Storage defines the minimal interface for file storage backends.
// Intentionally simple: save a file, delete a file, get its URL.
type Storage interface {
	// Save stores a file under the given key.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes a file by key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a stored key.
	GetURL(key string) string
}

// Config holds S3 backend settings
type Config struct {
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
}
