package mocks

import (
	"context"
	"testing"
	"time"

	"lumera/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthRepository struct {
	mock.Mock
}

func NewMockAuthRepository(t *testing.T) *MockAuthRepository {
	m := &MockAuthRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *MockAuthRepository) FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)

	return ret[*entity.Authentication](args, 0), args.Error(1)
}

func (m *MockAuthRepository) FindAuthenticationByUserID(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.Authentication, error) {
	args := m.Called(ctx, userID, provider)

	return ret[*entity.Authentication](args, 0), args.Error(1)
}

func (m *MockAuthRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func NewMockRefreshTokenRepository(t *testing.T) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)

	return ret[*entity.RefreshToken](args, 0), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)

	return ret[int64](args, 0), args.Error(1)
}

type MockPasswordResetRepository struct {
	mock.Mock
}

func NewMockPasswordResetRepository(t *testing.T) *MockPasswordResetRepository {
	m := &MockPasswordResetRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockPasswordResetRepository) Upsert(ctx context.Context, otp *entity.PasswordResetOTP) error {
	return m.Called(ctx, otp).Error(0)
}

func (m *MockPasswordResetRepository) FindByEmail(ctx context.Context, email string) (*entity.PasswordResetOTP, error) {
	args := m.Called(ctx, email)

	return ret[*entity.PasswordResetOTP](args, 0), args.Error(1)
}

func (m *MockPasswordResetRepository) RecordFailedAttempt(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)

	return args.Int(0), args.Error(1)
}

func (m *MockPasswordResetRepository) DeleteByEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
