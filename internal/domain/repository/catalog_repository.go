package repository

import (
	"context"

	"lumera/internal/domain/entity"
	"lumera/internal/errors"
)

var (
	// ErrProductNotFound is returned when no product matches.
	ErrProductNotFound = errors.New("product not found")
	// ErrCollectionNotFound is returned when no collection matches.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrMediaNotFound is returned when no media record matches.
	ErrMediaNotFound = errors.New("media not found")
	// ErrDuplicateSlug is returned when a slug is already used by another document.
	ErrDuplicateSlug = errors.New("slug already exists")
)

// ProductRepository stores catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// List returns one page of products, ordered by creation time, newest first.
	List(ctx context.Context, filter entity.ProductFilter) (*entity.Page[*entity.Product], error)
}

// CollectionRepository stores product collections.
type CollectionRepository interface {
	Create(ctx context.Context, collection *entity.Collection) error
	Update(ctx context.Context, collection *entity.Collection) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Collection, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Collection, error)

	// List returns every collection ordered by DisplayOrder.
	List(ctx context.Context) ([]*entity.Collection, error)
}

// MediaRepository stores metadata of uploaded images.
type MediaRepository interface {
	Create(ctx context.Context, media *entity.Media) error
	FindByID(ctx context.Context, id string) (*entity.Media, error)
	Delete(ctx context.Context, id string) error
}
