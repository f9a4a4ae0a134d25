// Package storage keeps media bytes in a gocloud.dev bucket selected by URL
// (file://, mem://, s3://, gs://).
package storage

import (
	"context"
	"io"
	"log/slog"

	"lumera/config"
	"lumera/internal/domain/service"
	"lumera/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

// ErrObjectNotFound is returned when a key has no object.
var ErrObjectNotFound = service.ErrBlobNotFound

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type blobStore struct {
	bucket *blob.Bucket
}

// New opens the configured bucket and closes it on shutdown
func New(params Params) (service.BlobStore, error) {
	if params.Config.Storage == nil || params.Config.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket URL is required")
	}

	bucket, err := blob.OpenBucket(context.Background(), params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", params.Config.Storage.BucketURL)
	}

	params.Logger.Info("Media bucket opened", slog.String("url", params.Config.Storage.BucketURL))

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewBlobStore(bucket), nil
}

// NewBlobStore wraps an open bucket.
func NewBlobStore(bucket *blob.Bucket) service.BlobStore {
	return &blobStore{bucket: bucket}
}

func (s *blobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	opts := &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	}

	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return errors.Wrapf(err, "failed to write object %s", key)
	}

	return nil
}

func (s *blobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrObjectNotFound
		}

		return nil, errors.Wrapf(err, "failed to open object %s", key)
	}

	return reader, nil
}

// Delete removes key. A missing object is not an error.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete object %s", key)
	}

	return nil
}
