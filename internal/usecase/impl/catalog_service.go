package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	deliverycontext "lumera/internal/delivery/context"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/domain/service"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"go.uber.org/fx"
)

// Cache key prefixes. Writes drop the whole prefix of the written kind.
const (
	productCachePrefix    = "products:"
	collectionCachePrefix = "collections:"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	products    repository.ProductRepository
	collections repository.CollectionRepository
	cache       service.CatalogCache
	now         func() time.Time
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo    repository.ProductRepository
	CollectionRepo repository.CollectionRepository
	Cache          service.CatalogCache
	Logger         *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		products:    params.ProductRepo,
		collections: params.CollectionRepo,
		cache:       params.Cache,
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts lists active products unless all statuses or a specific one is asked for.
func (srv *catalogService) ListProducts(ctx context.Context, input *usecase.ProductListInput) (*entity.Page[*entity.Product], error) {
	filter := entity.ProductFilter{
		Featured: input.Featured,
		Slug:     strings.TrimSpace(input.Slug),
		Page:     input.Page,
		Limit:    input.Limit,
	}

	switch {
	case input.Status != "":
		status := entity.ProductStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrInvalidInput.WithDetails("unknown product status " + input.Status)
		}
		filter.Status = status
	case !input.All:
		filter.Status = entity.ProductStatusActive
	}

	key := productCachePrefix + "list:" + productListKey(filter)

	var cached entity.Page[*entity.Product]
	if srv.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	page, err := srv.products.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	srv.cacheSet(ctx, key, page)

	return page, nil
}

func productListKey(f entity.ProductFilter) string {
	featured := "any"
	if f.Featured != nil {
		featured = fmt.Sprintf("%t", *f.Featured)
	}

	return fmt.Sprintf("status=%s&featured=%s&slug=%s&page=%d&limit=%d", f.Status, featured, f.Slug, f.Page, f.Limit)
}

func (srv *catalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	key := productCachePrefix + "id:" + id

	var cached entity.Product
	if srv.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	product, err := srv.products.FindByID(ctx, id)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	srv.cacheSet(ctx, key, product)

	return product, nil
}

func (srv *catalogService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := normalizeProduct(product); err != nil {
		return nil, err
	}

	now := srv.now()
	product.ID = ""
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := srv.products.Create(ctx, product); err != nil {
		return nil, mapCatalogError(err)
	}

	srv.invalidate(ctx, productCachePrefix)
	srv.log(ctx).Info("Product created", slog.String("product_id", product.ID), slog.String("slug", product.Slug))

	return product, nil
}

// UpdateProduct overlays the patch on the stored product; absent fields keep their values.
func (srv *catalogService) UpdateProduct(ctx context.Context, id string, patch json.RawMessage) (*entity.Product, error) {
	product, err := srv.products.FindByID(ctx, id)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	createdAt := product.CreatedAt
	if err := json.Unmarshal(patch, product); err != nil {
		return nil, domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}

	product.ID = id
	product.CreatedAt = createdAt
	product.UpdatedAt = srv.now()

	if err := normalizeProduct(product); err != nil {
		return nil, err
	}

	if err := srv.products.Update(ctx, product); err != nil {
		return nil, mapCatalogError(err)
	}

	srv.invalidate(ctx, productCachePrefix)
	srv.log(ctx).Info("Product updated", slog.String("product_id", id))

	return product, nil
}

func (srv *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := srv.products.Delete(ctx, id); err != nil {
		return mapCatalogError(err)
	}

	srv.invalidate(ctx, productCachePrefix)
	srv.log(ctx).Info("Product deleted", slog.String("product_id", id))

	return nil
}

func normalizeProduct(product *entity.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return domainerrors.NewValidationError(map[string]string{"name": "required"})
	}

	if product.Slug == "" {
		product.Slug = entity.Slugify(product.Name)
	} else {
		product.Slug = entity.Slugify(product.Slug)
	}

	if product.Status == "" {
		product.Status = entity.ProductStatusDraft
	}
	if !product.Status.IsValid() {
		return domainerrors.NewValidationError(map[string]string{"status": "oneof draft active archived"})
	}

	if product.Pricing.Price < 0 {
		return domainerrors.NewValidationError(map[string]string{"pricing.price": "min 0"})
	}

	return nil
}

// ListCollections returns every collection sorted by display order then name.
func (srv *catalogService) ListCollections(ctx context.Context) ([]*entity.Collection, error) {
	key := collectionCachePrefix + "list"

	var cached []*entity.Collection
	if srv.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	collections, err := srv.collections.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list collections")
	}
	if collections == nil {
		collections = []*entity.Collection{}
	}

	srv.cacheSet(ctx, key, collections)

	return collections, nil
}

func (srv *catalogService) GetCollection(ctx context.Context, id string) (*entity.Collection, error) {
	key := collectionCachePrefix + "id:" + id

	var cached entity.Collection
	if srv.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	collection, err := srv.collections.FindByID(ctx, id)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	srv.cacheSet(ctx, key, collection)

	return collection, nil
}

func (srv *catalogService) CreateCollection(ctx context.Context, collection *entity.Collection) (*entity.Collection, error) {
	if err := normalizeCollection(collection); err != nil {
		return nil, err
	}

	now := srv.now()
	collection.ID = ""
	collection.CreatedAt = now
	collection.UpdatedAt = now

	if err := srv.collections.Create(ctx, collection); err != nil {
		return nil, mapCatalogError(err)
	}

	srv.invalidate(ctx, collectionCachePrefix)
	srv.log(ctx).Info("Collection created", slog.String("collection_id", collection.ID), slog.String("slug", collection.Slug))

	return collection, nil
}

func (srv *catalogService) UpdateCollection(ctx context.Context, id string, patch json.RawMessage) (*entity.Collection, error) {
	collection, err := srv.collections.FindByID(ctx, id)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	createdAt := collection.CreatedAt
	if err := json.Unmarshal(patch, collection); err != nil {
		return nil, domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}

	collection.ID = id
	collection.CreatedAt = createdAt
	collection.UpdatedAt = srv.now()

	if err := normalizeCollection(collection); err != nil {
		return nil, err
	}

	if err := srv.collections.Update(ctx, collection); err != nil {
		return nil, mapCatalogError(err)
	}

	srv.invalidate(ctx, collectionCachePrefix)
	srv.log(ctx).Info("Collection updated", slog.String("collection_id", id))

	return collection, nil
}

func (srv *catalogService) DeleteCollection(ctx context.Context, id string) error {
	if err := srv.collections.Delete(ctx, id); err != nil {
		return mapCatalogError(err)
	}

	srv.invalidate(ctx, collectionCachePrefix)
	srv.log(ctx).Info("Collection deleted", slog.String("collection_id", id))

	return nil
}

func normalizeCollection(collection *entity.Collection) error {
	collection.Name = strings.TrimSpace(collection.Name)
	if collection.Name == "" {
		return domainerrors.NewValidationError(map[string]string{"name": "required"})
	}

	collection.ApplyDefaults()

	if !collection.Status.IsValid() {
		return domainerrors.NewValidationError(map[string]string{"status": "oneof draft active coming-soon archived"})
	}

	return nil
}

// cacheGet reports a hit. Cache failures are logged and treated as misses.
func (srv *catalogService) cacheGet(ctx context.Context, key string, dest any) bool {
	hit, err := srv.cache.Get(ctx, key, dest)
	if err != nil {
		srv.log(ctx).Warn("Catalog cache read failed", slog.Any("error", err), slog.String("key", key))

		return false
	}

	return hit
}

func (srv *catalogService) cacheSet(ctx context.Context, key string, value any) {
	if err := srv.cache.Set(ctx, key, value); err != nil {
		srv.log(ctx).Warn("Catalog cache write failed", slog.Any("error", err), slog.String("key", key))
	}
}

func (srv *catalogService) invalidate(ctx context.Context, prefix string) {
	if err := srv.cache.InvalidatePrefix(ctx, prefix); err != nil {
		srv.log(ctx).Warn("Catalog cache invalidation failed", slog.Any("error", err), slog.String("prefix", prefix))
	}
}

func mapCatalogError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return domainerrors.ErrProductNotFound
	case errors.Is(err, repository.ErrCollectionNotFound):
		return domainerrors.ErrCollectionNotFound
	case errors.Is(err, repository.ErrDuplicateSlug):
		return domainerrors.ErrSlugTaken
	default:
		return errors.Wrap(err, "catalog store failed")
	}
}
