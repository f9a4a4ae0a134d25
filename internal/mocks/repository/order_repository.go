package mocks

import (
	"context"
	"testing"

	"lumera/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository(t *testing.T) *MockOrderRepository {
	m := &MockOrderRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	args := m.Called(ctx, orderNumber)

	return ret[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Order, error) {
	args := m.Called(ctx, paymentID)

	return ret[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, int64, error) {
	args := m.Called(ctx, filter)

	return ret[[]*entity.Order](args, 0), ret[int64](args, 1), args.Error(2)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, userID uuid.UUID, email string) ([]*entity.Order, error) {
	args := m.Called(ctx, userID, email)

	return ret[[]*entity.Order](args, 0), args.Error(1)
}

type MockCouponRepository struct {
	mock.Mock
}

func NewMockCouponRepository(t *testing.T) *MockCouponRepository {
	m := &MockCouponRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockCouponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *MockCouponRepository) Update(ctx context.Context, coupon *entity.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	args := m.Called(ctx, id)

	return ret[*entity.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	args := m.Called(ctx, code)

	return ret[*entity.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponRepository) List(ctx context.Context) ([]*entity.Coupon, error) {
	args := m.Called(ctx)

	return ret[[]*entity.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
