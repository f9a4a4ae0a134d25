package impl

import (
	"context"
	"encoding/json"
	"testing"

	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/errors"
	mockRepo "lumera/internal/mocks/repository"
	mockSvc "lumera/internal/mocks/service"
	"lumera/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogFixtures struct {
	service     usecase.CatalogUsecase
	products    *mockRepo.MockProductRepository
	collections *mockRepo.MockCollectionRepository
	cache       *mockSvc.MockCatalogCache
}

func createTestCatalogService(t *testing.T) catalogFixtures {
	f := catalogFixtures{
		products:    mockRepo.NewMockProductRepository(t),
		collections: mockRepo.NewMockCollectionRepository(t),
		cache:       mockSvc.NewMockCatalogCache(t),
	}

	svc := NewCatalogService(CatalogServiceParams{
		ProductRepo:    f.products,
		CollectionRepo: f.collections,
		Cache:          f.cache,
		Logger:         newDiscardLogger(),
	})
	svc.(*catalogService).now = fixedClock
	f.service = svc

	return f
}

func TestCatalogService_GetProduct_CacheHit(t *testing.T) {
	f := createTestCatalogService(t)

	f.cache.On("Get", mock.Anything, "products:id:p1", mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*entity.Product) = entity.Product{ID: "p1", Name: "Amber Noir"}
		}).
		Return(true, nil)

	product, err := f.service.GetProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "Amber Noir", product.Name)
	f.products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCatalogService_GetProduct_MissFillsCache(t *testing.T) {
	f := createTestCatalogService(t)
	stored := activeProduct("p1", 850)

	f.cache.On("Get", mock.Anything, "products:id:p1", mock.Anything).Return(false, nil)
	f.products.On("FindByID", mock.Anything, "p1").Return(stored, nil)
	f.cache.On("Set", mock.Anything, "products:id:p1", stored).Return(nil)

	product, err := f.service.GetProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.Same(t, stored, product)
}

func TestCatalogService_GetProduct_CacheDownFallsBackToStore(t *testing.T) {
	f := createTestCatalogService(t)
	stored := activeProduct("p1", 850)

	f.cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("dial tcp: connection refused"))
	f.cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("dial tcp: connection refused"))
	f.products.On("FindByID", mock.Anything, "p1").Return(stored, nil)

	product, err := f.service.GetProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, int64(850), product.Pricing.Price)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	f := createTestCatalogService(t)

	f.cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.products.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrProductNotFound)

	_, err := f.service.GetProduct(context.Background(), "missing")

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_ListProducts_DefaultsToActive(t *testing.T) {
	f := createTestCatalogService(t)
	page := entity.NewPage([]*entity.Product{activeProduct("p1", 850)}, 1, 1, 10)

	f.cache.On("Get", mock.Anything, "products:list:status=active&featured=any&slug=&page=1&limit=10", mock.Anything).Return(false, nil)
	f.products.On("List", mock.Anything, entity.ProductFilter{Status: entity.ProductStatusActive, Page: 1, Limit: 10}).Return(page, nil)
	f.cache.On("Set", mock.Anything, mock.Anything, page).Return(nil)

	result, err := f.service.ListProducts(context.Background(), &usecase.ProductListInput{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, result.Docs, 1)
}

func TestCatalogService_ListProducts_UnknownStatus(t *testing.T) {
	f := createTestCatalogService(t)

	_, err := f.service.ListProducts(context.Background(), &usecase.ProductListInput{Status: "sold-out"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	f := createTestCatalogService(t)

	f.products.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Product).ID = "p9" }).
		Return(nil)
	f.cache.On("InvalidatePrefix", mock.Anything, "products:").Return(nil)

	product, err := f.service.CreateProduct(context.Background(), &entity.Product{
		ID:      "client-chosen",
		Name:    "  Sandalwood Dusk ",
		Pricing: entity.ProductPricing{Price: 1200},
	})

	require.NoError(t, err)
	assert.Equal(t, "p9", product.ID)
	assert.Equal(t, "Sandalwood Dusk", product.Name)
	assert.Equal(t, "sandalwood-dusk", product.Slug)
	assert.Equal(t, entity.ProductStatusDraft, product.Status)
	assert.Equal(t, testNow, product.CreatedAt)
}

func TestCatalogService_CreateProduct_Invalid(t *testing.T) {
	f := createTestCatalogService(t)

	tests := []struct {
		name    string
		product *entity.Product
		field   string
	}{
		{name: "blank name", product: &entity.Product{Name: "  "}, field: "name"},
		{name: "unknown status", product: &entity.Product{Name: "Rose", Status: "hidden"}, field: "status"},
		{name: "negative price", product: &entity.Product{Name: "Rose", Pricing: entity.ProductPricing{Price: -1}}, field: "pricing.price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateProduct(context.Background(), tt.product)

			var validationErr *domainerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tt.field)
		})
	}
}

func TestCatalogService_CreateProduct_SlugTaken(t *testing.T) {
	f := createTestCatalogService(t)
	f.products.On("Create", mock.Anything, mock.Anything).Return(errors.Wrap(repository.ErrDuplicateSlug, "E11000"))

	_, err := f.service.CreateProduct(context.Background(), &entity.Product{Name: "Amber Noir"})

	assert.ErrorIs(t, err, domainerrors.ErrSlugTaken)
}

func TestCatalogService_UpdateProduct_OverlaysPatch(t *testing.T) {
	f := createTestCatalogService(t)
	stored := activeProduct("p1", 850)
	stored.Name = "Amber Noir"
	stored.Slug = "amber-noir"
	stored.Tagline = "Warm and smoky"
	createdAt := stored.CreatedAt

	f.products.On("FindByID", mock.Anything, "p1").Return(stored, nil)
	f.products.On("Update", mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil)
	f.cache.On("InvalidatePrefix", mock.Anything, "products:").Return(nil)

	patch := json.RawMessage(`{"id":"other","pricing":{"price":999},"featured":true}`)
	product, err := f.service.UpdateProduct(context.Background(), "p1", patch)

	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
	assert.Equal(t, int64(999), product.Pricing.Price)
	assert.True(t, product.Featured)
	assert.Equal(t, "Amber Noir", product.Name)
	assert.Equal(t, "Warm and smoky", product.Tagline)
	assert.Equal(t, createdAt, product.CreatedAt)
	assert.Equal(t, testNow, product.UpdatedAt)
}

func TestCatalogService_UpdateProduct_BadPatch(t *testing.T) {
	f := createTestCatalogService(t)
	f.products.On("FindByID", mock.Anything, "p1").Return(activeProduct("p1", 850), nil)

	_, err := f.service.UpdateProduct(context.Background(), "p1", json.RawMessage(`{"pricing":"free"}`))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestCatalogService_DeleteCollection(t *testing.T) {
	f := createTestCatalogService(t)

	f.collections.On("Delete", mock.Anything, "c1").Return(nil).Once()
	f.collections.On("Delete", mock.Anything, "c2").Return(repository.ErrCollectionNotFound).Once()
	f.cache.On("InvalidatePrefix", mock.Anything, "collections:").Return(errors.New("redis: nil")).Once()

	assert.NoError(t, f.service.DeleteCollection(context.Background(), "c1"))
	assert.ErrorIs(t, f.service.DeleteCollection(context.Background(), "c2"), domainerrors.ErrCollectionNotFound)
}

func TestCatalogService_ListCollections_EmptyIsNotNil(t *testing.T) {
	f := createTestCatalogService(t)

	f.cache.On("Get", mock.Anything, "collections:list", mock.Anything).Return(false, nil)
	f.collections.On("List", mock.Anything).Return(nil, nil)
	f.cache.On("Set", mock.Anything, "collections:list", []*entity.Collection{}).Return(nil)

	collections, err := f.service.ListCollections(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, collections)
	assert.Empty(t, collections)
}
