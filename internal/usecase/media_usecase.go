package usecase

import (
	"context"
	"io"

	"lumera/internal/domain/entity"
)

// UploadMediaInput is an uploaded image with its descriptive fields.
type UploadMediaInput struct {
	Filename    string
	ContentType string
	Data        []byte
	Alt         string
	Caption     string
	Category    string
}

// MediaUsecase stores images: bytes in the bucket, metadata in the catalog store.
type MediaUsecase interface {
	Upload(ctx context.Context, input *UploadMediaInput) (*entity.Media, error)

	// Open returns the metadata and a reader over the bytes; callers close the reader.
	Open(ctx context.Context, id string) (*entity.Media, io.ReadCloser, error)

	Delete(ctx context.Context, id string) error
}
