package mocks

import (
	"context"
	"testing"

	"lumera/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockCartRepository stubs the stored cart; Update applies fn to the cart returned for the id.
type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository(t *testing.T) *MockCartRepository {
	m := &MockCartRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockCartRepository) Get(ctx context.Context, id string) (*entity.Cart, error) {
	args := m.Called(ctx, id)

	return ret[*entity.Cart](args, 0), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *MockCartRepository) Update(ctx context.Context, id string, fn func(cart *entity.Cart) error) (*entity.Cart, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}

	cart := ret[*entity.Cart](args, 0)
	if err := fn(cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (m *MockCartRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
