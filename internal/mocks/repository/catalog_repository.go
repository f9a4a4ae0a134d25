package mocks

import (
	"context"
	"testing"

	"lumera/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository(t *testing.T) *MockProductRepository {
	m := &MockProductRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)

	return ret[*entity.Product](args, 0), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	args := m.Called(ctx, slug)

	return ret[*entity.Product](args, 0), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter entity.ProductFilter) (*entity.Page[*entity.Product], error) {
	args := m.Called(ctx, filter)

	return ret[*entity.Page[*entity.Product]](args, 0), args.Error(1)
}

type MockCollectionRepository struct {
	mock.Mock
}

func NewMockCollectionRepository(t *testing.T) *MockCollectionRepository {
	m := &MockCollectionRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockCollectionRepository) Create(ctx context.Context, collection *entity.Collection) error {
	return m.Called(ctx, collection).Error(0)
}

func (m *MockCollectionRepository) Update(ctx context.Context, collection *entity.Collection) error {
	return m.Called(ctx, collection).Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCollectionRepository) FindByID(ctx context.Context, id string) (*entity.Collection, error) {
	args := m.Called(ctx, id)

	return ret[*entity.Collection](args, 0), args.Error(1)
}

func (m *MockCollectionRepository) FindBySlug(ctx context.Context, slug string) (*entity.Collection, error) {
	args := m.Called(ctx, slug)

	return ret[*entity.Collection](args, 0), args.Error(1)
}

func (m *MockCollectionRepository) List(ctx context.Context) ([]*entity.Collection, error) {
	args := m.Called(ctx)

	return ret[[]*entity.Collection](args, 0), args.Error(1)
}

type MockMediaRepository struct {
	mock.Mock
}

func NewMockMediaRepository(t *testing.T) *MockMediaRepository {
	m := &MockMediaRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockMediaRepository) Create(ctx context.Context, media *entity.Media) error {
	return m.Called(ctx, media).Error(0)
}

func (m *MockMediaRepository) FindByID(ctx context.Context, id string) (*entity.Media, error) {
	args := m.Called(ctx, id)

	return ret[*entity.Media](args, 0), args.Error(1)
}

func (m *MockMediaRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
