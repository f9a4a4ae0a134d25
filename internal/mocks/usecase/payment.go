package mocks

import (
	"context"
	"testing"

	"lumera/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockPaymentUsecase struct {
	mock.Mock
}

func NewMockPaymentUsecase(t *testing.T) *MockPaymentUsecase {
	m := &MockPaymentUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockPaymentUsecase) VerifyPayment(ctx context.Context, input *usecase.VerifyPaymentInput) (*usecase.VerifyPaymentOutput, error) {
	args := m.Called(ctx, input)

	return ret[*usecase.VerifyPaymentOutput](args, 0), args.Error(1)
}

type MockCheckoutUsecase struct {
	mock.Mock
}

func NewMockCheckoutUsecase(t *testing.T) *MockCheckoutUsecase {
	m := &MockCheckoutUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockCheckoutUsecase) Quote(ctx context.Context, input *usecase.QuoteInput) (*usecase.QuoteOutput, error) {
	args := m.Called(ctx, input)

	return ret[*usecase.QuoteOutput](args, 0), args.Error(1)
}

func (m *MockCheckoutUsecase) CreatePaymentOrder(ctx context.Context, input *usecase.PaymentOrderInput) (*usecase.PaymentOrderOutput, error) {
	args := m.Called(ctx, input)

	return ret[*usecase.PaymentOrderOutput](args, 0), args.Error(1)
}
