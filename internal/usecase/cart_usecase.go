package usecase

import (
	"context"

	"lumera/internal/domain/configurator"
	"lumera/internal/domain/entity"
)

// CartUsecase manages server-side carts keyed by an opaque id.
type CartUsecase interface {
	Create(ctx context.Context) (*entity.Cart, error)
	Get(ctx context.Context, cartID string) (*entity.Cart, error)

	// AddProduct adds a catalog product; name, price and image come from the catalog.
	AddProduct(ctx context.Context, cartID, productID string, quantity int) (*entity.Cart, error)

	// AddCustom adds a configurator build as a single line priced at its unit price.
	AddCustom(ctx context.Context, cartID string, cfg configurator.Configuration, quantity int) (*entity.Cart, error)

	// UpdateItem sets a line's quantity; below 1 removes the line.
	UpdateItem(ctx context.Context, cartID, itemID string, quantity int) (*entity.Cart, error)
	RemoveItem(ctx context.Context, cartID, itemID string) (*entity.Cart, error)
	Delete(ctx context.Context, cartID string) error
}

// ConfiguratorQuote is the live price and gating state of a build.
type ConfiguratorQuote struct {
	UnitPrice   int64                      `json:"unitPrice"`
	Quantity    int                        `json:"quantity"`
	Total       int64                      `json:"total"`
	Gates       map[configurator.Step]bool `json:"gates"`
	CanAddToBag bool                       `json:"canAddToBag"`
	Problems    map[string]string          `json:"problems,omitempty"`
}

// ConfiguratorUsecase exposes the custom candle builder.
type ConfiguratorUsecase interface {
	Options(ctx context.Context) configurator.Catalog
	Quote(ctx context.Context, cfg configurator.Configuration, quantity int) *ConfiguratorQuote
}
