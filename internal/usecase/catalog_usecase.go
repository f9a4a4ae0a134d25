package usecase

import (
	"context"
	"encoding/json"

	"lumera/internal/domain/entity"
)

// ProductListInput mirrors the product listing query string.
type ProductListInput struct {
	Featured *bool
	Status   string
	Slug     string
	All      bool // Include every status instead of only active products.
	Page     int
	Limit    int
}

// CatalogUsecase manages products and collections. Reads are cached, writes invalidate.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, input *ProductListInput) (*entity.Page[*entity.Product], error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)

	// UpdateProduct merges a JSON patch into the stored product.
	UpdateProduct(ctx context.Context, id string, patch json.RawMessage) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListCollections(ctx context.Context) ([]*entity.Collection, error)
	GetCollection(ctx context.Context, id string) (*entity.Collection, error)
	CreateCollection(ctx context.Context, collection *entity.Collection) (*entity.Collection, error)
	UpdateCollection(ctx context.Context, id string, patch json.RawMessage) (*entity.Collection, error)
	DeleteCollection(ctx context.Context, id string) error
}
