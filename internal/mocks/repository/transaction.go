package mocks

import (
	"context"

	"lumera/internal/domain/repository"
)

// MockTransactionManager runs fn against Factory. Err, when set, is returned without running fn.
type MockTransactionManager struct {
	Factory *MockRepositoryFactory
	Err     error
	Calls   int
}

func NewMockTransactionManager(factory *MockRepositoryFactory) *MockTransactionManager {
	return &MockTransactionManager{Factory: factory}
}

func (m *MockTransactionManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}

// MockRepositoryFactory hands out the repositories it holds.
type MockRepositoryFactory struct {
	UserRepo          repository.UserRepository
	AuthRepo          repository.AuthRepository
	RefreshTokenRepo  repository.RefreshTokenRepository
	PasswordResetRepo repository.PasswordResetRepository
	OrderRepo         repository.OrderRepository
	CouponRepo        repository.CouponRepository
}

func (f *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.UserRepo
}

func (f *MockRepositoryFactory) NewAuthRepository() repository.AuthRepository {
	return f.AuthRepo
}

func (f *MockRepositoryFactory) NewRefreshTokenRepository() repository.RefreshTokenRepository {
	return f.RefreshTokenRepo
}

func (f *MockRepositoryFactory) NewPasswordResetRepository() repository.PasswordResetRepository {
	return f.PasswordResetRepo
}

func (f *MockRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	return f.OrderRepo
}

func (f *MockRepositoryFactory) NewCouponRepository() repository.CouponRepository {
	return f.CouponRepo
}
