package impl

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"time"

	"lumera/config"
	deliverycontext "lumera/internal/delivery/context"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/domain/service"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const defaultOTPTTL = 10 * time.Minute

// passwordResetService implements the PasswordResetUsecase interface.
type passwordResetService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	resetRepo         repository.PasswordResetRepository
	hasher            service.PasswordHasher
	mailer            service.Mailer
	otpTTL            time.Duration
	minPasswordLength int
	random            io.Reader
	now               func() time.Time
	logger            *slog.Logger
}

// PasswordResetServiceParams holds dependencies for PasswordResetService, injected by Fx.
type PasswordResetServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Hasher            service.PasswordHasher
	Mailer            service.Mailer
	Config            *config.Config
	Logger            *slog.Logger
}

// NewPasswordResetService is the constructor for passwordResetService.
func NewPasswordResetService(params PasswordResetServiceParams) usecase.PasswordResetUsecase {
	otpTTL := defaultOTPTTL
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.OTPTTL > 0 {
		otpTTL = params.Config.Auth.OTPTTL
	}

	return &passwordResetService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		resetRepo:         params.PasswordResetRepo,
		hasher:            params.Hasher,
		mailer:            params.Mailer,
		otpTTL:            otpTTL,
		minPasswordLength: minPasswordLength(params.Config),
		random:            rand.Reader,
		now:               time.Now,
		logger:            params.Logger,
	}
}

func (srv *passwordResetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ForgotPassword emails a fresh code, replacing any pending one.
func (srv *passwordResetService) ForgotPassword(ctx context.Context, email string) error {
	email = entity.NormalizeEmail(email)

	if _, err := srv.userRepo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrAccountNotFound
		}

		return errors.Wrap(err, "failed to find user")
	}

	code, err := newOTP(srv.random)
	if err != nil {
		return err
	}

	now := srv.now()
	otp := &entity.PasswordResetOTP{
		ID:        uuid.New(),
		Email:     email,
		CodeHash:  hashSecret(code),
		ExpiresAt: now.Add(srv.otpTTL),
		CreatedAt: now,
	}
	if err := srv.resetRepo.Upsert(ctx, otp); err != nil {
		return errors.Wrap(err, "failed to store reset code")
	}

	if err := srv.mailer.Send(ctx, passwordResetEmail(email, code)); err != nil {
		srv.log(ctx).Error("Failed to send password reset email", slog.String("email", email), slog.Any("error", err))

		if delErr := srv.resetRepo.DeleteByEmail(ctx, email); delErr != nil {
			srv.log(ctx).Warn("Failed to discard undelivered reset code", slog.Any("error", delErr))
		}

		return domainerrors.ErrEmailDeliveryFailed
	}

	srv.log(ctx).Info("Password reset code sent", slog.String("email", email))

	return nil
}

func (srv *passwordResetService) VerifyOTP(ctx context.Context, email, otp string) error {
	_, err := srv.checkOTP(ctx, entity.NormalizeEmail(email), otp)

	return err
}

// ResetPassword redeems the code, replaces the password and ends every session.
func (srv *passwordResetService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = entity.NormalizeEmail(email)
	if len(newPassword) < srv.minPasswordLength {
		return domainerrors.ErrPasswordTooShort
	}

	if _, err := srv.checkOTP(ctx, email, otp); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(newPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.NewUserRepository().FindByEmail(ctx, email)
		if err != nil {
			return err
		}

		authRepo := repoFactory.NewAuthRepository()
		err = authRepo.UpdatePasswordHash(ctx, user.ID, hash)
		if errors.Is(err, repository.ErrAuthNotFound) {
			// Google-only account: the reset adds a password login.
			err = authRepo.CreateAuthentication(ctx, &entity.Authentication{
				UserID:         user.ID,
				Provider:       entity.ProviderTypeEmail,
				ProviderUserID: email,
				PasswordHash:   hash,
			})
		}
		if err != nil {
			return errors.Wrap(err, "failed to store new password")
		}

		if err := repoFactory.NewPasswordResetRepository().DeleteByEmail(ctx, email); err != nil {
			return errors.Wrap(err, "failed to discard reset code")
		}

		return repoFactory.NewRefreshTokenRepository().DeleteRefreshTokensByUserID(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrAccountNotFound
		}

		return errors.Wrap(err, "failed to execute password reset transaction")
	}

	srv.log(ctx).Info("Password reset completed", slog.String("email", email))

	return nil
}

func (srv *passwordResetService) checkOTP(ctx context.Context, email, code string) (*entity.PasswordResetOTP, error) {
	stored, err := srv.resetRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return nil, domainerrors.ErrInvalidOTP
		}

		return nil, errors.Wrap(err, "failed to find reset code")
	}

	if stored.IsExpired(srv.now()) {
		if err := srv.resetRepo.DeleteByEmail(ctx, email); err != nil {
			srv.log(ctx).Warn("Failed to discard expired reset code", slog.Any("error", err))
		}

		return nil, domainerrors.ErrOTPExpired
	}

	if stored.Attempts >= entity.MaxOTPAttempts {
		srv.discardCode(ctx, email)

		return nil, domainerrors.ErrInvalidOTP
	}

	if !secretMatches(code, stored.CodeHash) {
		attempts, err := srv.resetRepo.RecordFailedAttempt(ctx, email)
		if err != nil && !errors.Is(err, repository.ErrOTPNotFound) {
			return nil, errors.Wrap(err, "failed to record reset code attempt")
		}
		if attempts >= entity.MaxOTPAttempts {
			srv.log(ctx).Warn("Too many wrong reset codes, discarding", slog.String("email", email))
			srv.discardCode(ctx, email)
		}

		return nil, domainerrors.ErrInvalidOTP
	}

	return stored, nil
}

func (srv *passwordResetService) discardCode(ctx context.Context, email string) {
	if err := srv.resetRepo.DeleteByEmail(ctx, email); err != nil {
		srv.log(ctx).Warn("Failed to discard reset code", slog.Any("error", err))
	}
}
