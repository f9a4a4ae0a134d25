package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "lumera/internal/delivery/context"
	"lumera/internal/domain/configurator"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	carts       repository.CartRepository
	products    repository.ProductRepository
	collections repository.CollectionRepository
	now         func() time.Time
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo       repository.CartRepository
	ProductRepo    repository.ProductRepository
	CollectionRepo repository.CollectionRepository
	Logger         *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		carts:       params.CartRepo,
		products:    params.ProductRepo,
		collections: params.CollectionRepo,
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create starts an empty cart under a fresh id.
func (srv *cartService) Create(ctx context.Context) (*entity.Cart, error) {
	cart := &entity.Cart{
		ID:    uuid.NewString(),
		Items: []entity.CartItem{},
	}

	if err := srv.carts.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}
	srv.log(ctx).Debug("Cart created", slog.String("cart_id", cart.ID))

	return cart, nil
}

func (srv *cartService) Get(ctx context.Context, cartID string) (*entity.Cart, error) {
	cart, err := srv.carts.Get(ctx, cartID)
	if err != nil {
		return nil, mapCartError(err)
	}

	return cart, nil
}

// AddProduct resolves the product from the catalog; client-side prices are never trusted.
func (srv *cartService) AddProduct(ctx context.Context, cartID, productID string, quantity int) (*entity.Cart, error) {
	product, err := srv.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	if !product.IsPurchasable() {
		return nil, domainerrors.ErrProductUnavailable.WithDetails(product.Name)
	}

	item := product.ToCartItem(max(quantity, 1), srv.collectionName(ctx, product.Collection))

	return srv.update(ctx, cartID, func(cart *entity.Cart) error {
		cart.Add(item)

		return nil
	})
}

// AddCustom validates a configurator build and adds it as one line.
func (srv *cartService) AddCustom(ctx context.Context, cartID string, cfg configurator.Configuration, quantity int) (*entity.Cart, error) {
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, domainerrors.NewValidationError(problems)
	}

	if !cfg.CanAddToBag() {
		return nil, domainerrors.ErrInvalidConfiguration.WithDetails("vessel, scent, wax type and wick are required")
	}

	item := cfg.ToCartItem(quantity, srv.now())

	return srv.update(ctx, cartID, func(cart *entity.Cart) error {
		cart.Add(item)

		return nil
	})
}

func (srv *cartService) UpdateItem(ctx context.Context, cartID, itemID string, quantity int) (*entity.Cart, error) {
	return srv.update(ctx, cartID, func(cart *entity.Cart) error {
		if !cart.UpdateQuantity(itemID, quantity) {
			return domainerrors.ErrCartItemNotFound
		}

		return nil
	})
}

func (srv *cartService) RemoveItem(ctx context.Context, cartID, itemID string) (*entity.Cart, error) {
	return srv.update(ctx, cartID, func(cart *entity.Cart) error {
		if !cart.Remove(itemID) {
			return domainerrors.ErrCartItemNotFound
		}

		return nil
	})
}

func (srv *cartService) Delete(ctx context.Context, cartID string) error {
	if err := srv.carts.Delete(ctx, cartID); err != nil {
		return mapCartError(err)
	}

	return nil
}

func (srv *cartService) update(ctx context.Context, cartID string, fn func(cart *entity.Cart) error) (*entity.Cart, error) {
	cart, err := srv.carts.Update(ctx, cartID, fn)
	if err != nil {
		if errors.Is(err, repository.ErrCartConflict) {
			srv.log(ctx).Warn("Cart update kept conflicting", slog.String("cart_id", cartID))
		}

		return nil, mapCartError(err)
	}

	return cart, nil
}

// collectionName labels a cart line; a missing collection leaves it blank.
func (srv *cartService) collectionName(ctx context.Context, collectionID string) string {
	if collectionID == "" {
		return ""
	}

	collection, err := srv.collections.FindByID(ctx, collectionID)
	if err != nil {
		if !errors.Is(err, repository.ErrCollectionNotFound) {
			srv.log(ctx).Warn("Failed to load product collection", slog.Any("error", err), slog.String("collection_id", collectionID))
		}

		return ""
	}

	return collection.Name
}

// mapCartError translates store errors to their API counterparts; other errors pass through.
func mapCartError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCartNotFound):
		return domainerrors.ErrCartNotFound
	case errors.Is(err, repository.ErrCartConflict):
		return domainerrors.ErrCartConflict
	default:
		return err
	}
}
