package mocks

import (
	"context"
	"testing"
	"time"

	"lumera/internal/domain/entity"
	"lumera/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	register(t, &m.Mock)

	return m
}

func (m *MockTokenService) GenerateTokens(userID uuid.UUID, roles []string) (string, string, error) {
	args := m.Called(userID, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)

	return ret[*service.Claims](args, 0), args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)

	return ret[*service.Claims](args, 0), args.Error(1)
}

func (m *MockTokenService) GetAccessTokenDuration() time.Duration {
	return ret[time.Duration](m.Called(), 0)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	return ret[time.Duration](m.Called(), 0)
}

type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	register(t, &m.Mock)

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type MockOAuthAuthService struct {
	mock.Mock
}

func NewMockOAuthAuthService(t *testing.T) *MockOAuthAuthService {
	m := &MockOAuthAuthService{}
	register(t, &m.Mock)

	return m
}

func (m *MockOAuthAuthService) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	args := m.Called(ctx, idToken)

	return ret[*service.OAuthUser](args, 0), args.Error(1)
}

func (m *MockOAuthAuthService) GetProvider() entity.ProviderType {
	return ret[entity.ProviderType](m.Called(), 0)
}
