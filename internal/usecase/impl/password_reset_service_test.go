package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"lumera/config"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/domain/service"
	"lumera/internal/errors"
	mockRepo "lumera/internal/mocks/repository"
	mockSvc "lumera/internal/mocks/service"
	"lumera/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type passwordResetFixtures struct {
	service          usecase.PasswordResetUsecase
	userRepo         *mockRepo.MockUserRepository
	authRepo         *mockRepo.MockAuthRepository
	resetRepo        *mockRepo.MockPasswordResetRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockSvc.MockPasswordHasher
	mailer           *mockSvc.MockMailer
}

func createTestPasswordResetService(t *testing.T) passwordResetFixtures {
	f := passwordResetFixtures{
		userRepo:         mockRepo.NewMockUserRepository(t),
		authRepo:         mockRepo.NewMockAuthRepository(t),
		resetRepo:        mockRepo.NewMockPasswordResetRepository(t),
		refreshTokenRepo: mockRepo.NewMockRefreshTokenRepository(t),
		hasher:           mockSvc.NewMockPasswordHasher(t),
		mailer:           mockSvc.NewMockMailer(t),
	}

	txManager := mockRepo.NewMockTransactionManager(&mockRepo.MockRepositoryFactory{
		UserRepo:          f.userRepo,
		AuthRepo:          f.authRepo,
		RefreshTokenRepo:  f.refreshTokenRepo,
		PasswordResetRepo: f.resetRepo,
	})

	svc := NewPasswordResetService(PasswordResetServiceParams{
		TxManager:         txManager,
		UserRepo:          f.userRepo,
		PasswordResetRepo: f.resetRepo,
		Hasher:            f.hasher,
		Mailer:            f.mailer,
		Config:            &config.Config{Auth: &config.AuthConfig{OTPTTL: 10 * time.Minute, MinPasswordLength: 6}},
		Logger:            newDiscardLogger(),
	})
	svc.(*passwordResetService).now = fixedClock
	f.service = svc

	return f
}

func pendingOTP(code string, expiresAt time.Time) *entity.PasswordResetOTP {
	return &entity.PasswordResetOTP{
		Email:     "asha@example.com",
		CodeHash:  hashSecret(code),
		ExpiresAt: expiresAt,
	}
}

func TestPasswordResetService_ForgotPassword(t *testing.T) {
	f := createTestPasswordResetService(t)

	var stored *entity.PasswordResetOTP
	var sent *service.Email
	f.userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(&entity.User{ID: uuid.New()}, nil)
	f.resetRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*entity.PasswordResetOTP")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*entity.PasswordResetOTP) }).
		Return(nil)
	f.mailer.On("Send", mock.Anything, mock.AnythingOfType("*service.Email")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*service.Email) }).
		Return(nil)

	err := f.service.ForgotPassword(context.Background(), "Asha@Example.com")

	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, sent)
	assert.Equal(t, "asha@example.com", sent.To)
	assert.Equal(t, testNow.Add(10*time.Minute), stored.ExpiresAt)

	_, rest, ok := strings.Cut(sent.Body, "is: ")
	require.True(t, ok)
	code := rest[:otpDigits]
	assert.Regexp(t, `^\d{6}$`, code)
	assert.Equal(t, hashSecret(code), stored.CodeHash)
	assert.NotContains(t, stored.CodeHash, code)
}

func TestPasswordResetService_ForgotPassword_UnknownEmail(t *testing.T) {
	f := createTestPasswordResetService(t)
	f.userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	err := f.service.ForgotPassword(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestPasswordResetService_ForgotPassword_MailFailureDiscardsCode(t *testing.T) {
	f := createTestPasswordResetService(t)
	f.userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(&entity.User{ID: uuid.New()}, nil)
	f.resetRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("535 authentication failed"))
	f.resetRepo.On("DeleteByEmail", mock.Anything, "asha@example.com").Return(nil)

	err := f.service.ForgotPassword(context.Background(), "asha@example.com")

	assert.ErrorIs(t, err, domainerrors.ErrEmailDeliveryFailed)
}

func TestPasswordResetService_VerifyOTP(t *testing.T) {
	f := createTestPasswordResetService(t)
	f.resetRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(pendingOTP("123456", testNow.Add(time.Minute)), nil)
	f.resetRepo.On("RecordFailedAttempt", mock.Anything, "asha@example.com").Return(1, nil)

	assert.NoError(t, f.service.VerifyOTP(context.Background(), "asha@example.com", "123456"))
	assert.ErrorIs(t, f.service.VerifyOTP(context.Background(), "asha@example.com", "654321"), domainerrors.ErrInvalidOTP)
}

func TestPasswordResetService_VerifyOTP_ExpiredOrMissing(t *testing.T) {
	f := createTestPasswordResetService(t)
	f.resetRepo.On("FindByEmail", mock.Anything, "late@example.com").Return(pendingOTP("123456", testNow.Add(-time.Second)), nil)
	f.resetRepo.On("DeleteByEmail", mock.Anything, "late@example.com").Return(nil)
	f.resetRepo.On("FindByEmail", mock.Anything, "none@example.com").Return(nil, repository.ErrOTPNotFound)

	assert.ErrorIs(t, f.service.VerifyOTP(context.Background(), "late@example.com", "123456"), domainerrors.ErrOTPExpired)
	assert.ErrorIs(t, f.service.VerifyOTP(context.Background(), "none@example.com", "123456"), domainerrors.ErrInvalidOTP)
}

func TestPasswordResetService_ResetPassword(t *testing.T) {
	f := createTestPasswordResetService(t)
	userID := uuid.New()

	f.resetRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(pendingOTP("123456", testNow.Add(time.Minute)), nil)
	f.hasher.On("Hash", "newsecret").Return("new_hash", nil)
	f.userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(&entity.User{ID: userID}, nil)
	f.authRepo.On("UpdatePasswordHash", mock.Anything, userID, "new_hash").Return(nil)
	f.resetRepo.On("DeleteByEmail", mock.Anything, "asha@example.com").Return(nil)
	f.refreshTokenRepo.On("DeleteRefreshTokensByUserID", mock.Anything, userID).Return(nil)

	err := f.service.ResetPassword(context.Background(), "asha@example.com", "123456", "newsecret")

	require.NoError(t, err)
}

func TestPasswordResetService_ResetPassword_AddsPasswordToGoogleAccount(t *testing.T) {
	f := createTestPasswordResetService(t)
	userID := uuid.New()

	f.resetRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(pendingOTP("123456", testNow.Add(time.Minute)), nil)
	f.hasher.On("Hash", "newsecret").Return("new_hash", nil)
	f.userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(&entity.User{ID: userID}, nil)
	f.authRepo.On("UpdatePasswordHash", mock.Anything, userID, "new_hash").Return(repository.ErrAuthNotFound)
	f.authRepo.On("CreateAuthentication", mock.Anything, mock.MatchedBy(func(auth *entity.Authentication) bool {
		return auth.UserID == userID && auth.Provider == entity.ProviderTypeEmail && auth.PasswordHash == "new_hash"
	})).Return(nil)
	f.resetRepo.On("DeleteByEmail", mock.Anything, "asha@example.com").Return(nil)
	f.refreshTokenRepo.On("DeleteRefreshTokensByUserID", mock.Anything, userID).Return(nil)

	err := f.service.ResetPassword(context.Background(), "asha@example.com", "123456", "newsecret")

	require.NoError(t, err)
}

func TestPasswordResetService_ResetPassword_Rejections(t *testing.T) {
	f := createTestPasswordResetService(t)
	f.resetRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(pendingOTP("123456", testNow.Add(time.Minute)), nil)

	err := f.service.ResetPassword(context.Background(), "asha@example.com", "123456", "short")
	assert.ErrorIs(t, err, domainerrors.ErrPasswordTooShort)

	f.resetRepo.On("RecordFailedAttempt", mock.Anything, "asha@example.com").Return(1, nil)
	err = f.service.ResetPassword(context.Background(), "asha@example.com", "000000", "newsecret")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
}

func TestPasswordResetService_VerifyOTP_WrongGuessesDiscardCode(t *testing.T) {
	f := createTestPasswordResetService(t)
	ctx := context.Background()
	otp := pendingOTP("123456", testNow.Add(time.Minute))
	otp.Attempts = entity.MaxOTPAttempts - 1

	f.resetRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(otp, nil).Once()
	f.resetRepo.On("RecordFailedAttempt", mock.Anything, "asha@example.com").Return(entity.MaxOTPAttempts, nil).Once()
	f.resetRepo.On("DeleteByEmail", mock.Anything, "asha@example.com").Return(nil).Once()

	assert.ErrorIs(t, f.service.VerifyOTP(ctx, "asha@example.com", "000000"), domainerrors.ErrInvalidOTP)

	// The right code no longer works once the row is gone.
	f.resetRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(nil, repository.ErrOTPNotFound).Once()
	assert.ErrorIs(t, f.service.VerifyOTP(ctx, "asha@example.com", "123456"), domainerrors.ErrInvalidOTP)
}

func TestPasswordResetService_VerifyOTP_ExhaustedCodeRejectsCorrectGuess(t *testing.T) {
	f := createTestPasswordResetService(t)
	otp := pendingOTP("123456", testNow.Add(time.Minute))
	otp.Attempts = entity.MaxOTPAttempts

	f.resetRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(otp, nil)
	f.resetRepo.On("DeleteByEmail", mock.Anything, "asha@example.com").Return(nil)

	err := f.service.VerifyOTP(context.Background(), "asha@example.com", "123456")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
	f.resetRepo.AssertNotCalled(t, "RecordFailedAttempt", mock.Anything, mock.Anything)
}
