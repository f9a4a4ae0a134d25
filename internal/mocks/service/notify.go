package mocks

import (
	"context"
	"testing"

	"lumera/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func NewMockMailer(t *testing.T) *MockMailer {
	m := &MockMailer{}
	register(t, &m.Mock)

	return m
}

func (m *MockMailer) Send(ctx context.Context, email *service.Email) error {
	return m.Called(ctx, email).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	register(t, &m.Mock)

	return m
}

func (m *MockEventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type MockQRCodeService struct {
	mock.Mock
}

func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	register(t, &m.Mock)

	return m
}

func (m *MockQRCodeService) GenerateOrderQR(orderNumber string) ([]byte, error) {
	args := m.Called(orderNumber)

	return ret[[]byte](args, 0), args.Error(1)
}

func (m *MockQRCodeService) ParseOrderQR(qrData string) (string, error) {
	args := m.Called(qrData)

	return args.String(0), args.Error(1)
}
