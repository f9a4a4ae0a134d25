package repository

import (
	"context"

	"lumera/internal/domain/entity"
	"lumera/internal/errors"
)

var (
	// ErrCartNotFound is returned when a cart id is unknown or expired.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartConflict is returned when concurrent writers keep racing on a cart.
	ErrCartConflict = errors.New("cart modified concurrently")
)

// CartRepository stores server-side carts.
type CartRepository interface {
	Get(ctx context.Context, id string) (*entity.Cart, error)

	// Save overwrites the cart.
	Save(ctx context.Context, cart *entity.Cart) error

	// Update applies fn to the stored cart atomically and returns the result.
	// fn may be re-run when another writer changes the cart concurrently.
	Update(ctx context.Context, id string, fn func(cart *entity.Cart) error) (*entity.Cart, error)

	Delete(ctx context.Context, id string) error
}
