package storage

import (
	"context"
	"io"
)

type FileStorage interface {
	// Upload uploads a file and returns the file path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error
}
