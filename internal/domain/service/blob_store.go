package service

import (
	"context"
	"io"

	"lumera/internal/errors"
)

// ErrBlobNotFound is returned by Open when the key holds no object.
var ErrBlobNotFound = errors.New("object not found")

// BlobStore keeps media bytes.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Open returns a reader for key; callers close it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	Delete(ctx context.Context, key string) error
}
