package mocks

import (
	"context"
	"testing"

	"lumera/internal/domain/entity"
	"lumera/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderUsecase struct {
	mock.Mock
}

func NewMockOrderUsecase(t *testing.T) *MockOrderUsecase {
	m := &MockOrderUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockOrderUsecase) List(ctx context.Context, input *usecase.OrderListInput) (*entity.Page[*entity.Order], error) {
	args := m.Called(ctx, input)

	return ret[*entity.Page[*entity.Order]](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) Get(ctx context.Context, orderNumber string, requester usecase.Requester) (*entity.Order, error) {
	args := m.Called(ctx, orderNumber, requester)

	return ret[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) UpdateStatus(ctx context.Context, orderNumber string, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	args := m.Called(ctx, orderNumber, input)

	return ret[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) Refund(ctx context.Context, orderNumber string, amount *int64) (*entity.Order, error) {
	args := m.Called(ctx, orderNumber, amount)

	return ret[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) QRCode(ctx context.Context, orderNumber string) ([]byte, error) {
	args := m.Called(ctx, orderNumber)

	return ret[[]byte](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) MyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)

	return ret[[]*entity.Order](args, 0), args.Error(1)
}
