package mocks

import (
	"context"
	"testing"

	"lumera/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type MockPaymentGateway struct {
	mock.Mock
}

func NewMockPaymentGateway(t *testing.T) *MockPaymentGateway {
	m := &MockPaymentGateway{}
	register(t, &m.Mock)

	return m
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*service.GatewayOrder, error) {
	args := m.Called(ctx, amount, receipt, notes)

	return ret[*service.GatewayOrder](args, 0), args.Error(1)
}

func (m *MockPaymentGateway) FetchPayment(ctx context.Context, paymentID string) (*service.GatewayPayment, error) {
	args := m.Called(ctx, paymentID)

	return ret[*service.GatewayPayment](args, 0), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, paymentID string, amount int64) (*service.GatewayRefund, error) {
	args := m.Called(ctx, paymentID, amount)

	return ret[*service.GatewayRefund](args, 0), args.Error(1)
}

func (m *MockPaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return m.Called(orderID, paymentID, signature).Bool(0)
}
