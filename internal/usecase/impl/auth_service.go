// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
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

const defaultMinPasswordLength = 6

// authService implements the AuthUsecase interface.
type authService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	authRepo          repository.AuthRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	googleAuthService service.OAuthAuthService
	mailer            service.Mailer
	minPasswordLength int
	now               func() time.Time
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	AuthRepo          repository.AuthRepository
	RefreshTokenRepo  repository.RefreshTokenRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	GoogleAuthService service.OAuthAuthService
	Mailer            service.Mailer
	Config            *config.Config
	Logger            *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		authRepo:          params.AuthRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		googleAuthService: params.GoogleAuthService,
		mailer:            params.Mailer,
		minPasswordLength: minPasswordLength(params.Config),
		now:               time.Now,
		logger:            params.Logger,
	}
}

func minPasswordLength(cfg *config.Config) int {
	if cfg == nil || cfg.Auth == nil || cfg.Auth.MinPasswordLength <= 0 {
		return defaultMinPasswordLength
	}

	return cfg.Auth.MinPasswordLength
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates a customer account with an email/password credential and signs it in.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	if len(input.Password) < srv.minPasswordLength {
		return nil, domainerrors.ErrPasswordTooShort
	}

	srv.log(ctx).Info("Starting signup", slog.String("email", email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = entity.DefaultNameFromEmail(email)
	}

	newUser := &entity.User{
		Email: email,
		Name:  name,
		Phone: strings.TrimSpace(input.Phone),
		Role:  entity.RoleCustomer,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return domainerrors.ErrUserAlreadyExists
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up email")
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during signup")
		}

		return authRepo.CreateAuthentication(ctx, &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: email,
			PasswordHash:   hashedPassword,
		})
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			srv.log(ctx).Warn("Signup with existing email", slog.String("email", email))

			return nil, domainerrors.ErrUserAlreadyExists
		}
		srv.log(ctx).Error("Failed to execute signup transaction", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	if err := srv.mailer.Send(ctx, welcomeEmail(newUser)); err != nil {
		srv.log(ctx).Warn("Failed to send welcome email", slog.Any("userID", newUser.ID), slog.Any("error", err))
	}

	return srv.issueTokens(ctx, newUser)
}

// Login verifies an email/password pair. Unknown emails and wrong passwords look the same to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	authRecord, err := srv.authRepo.FindAuthenticationByUserID(ctx, user.ID, entity.ProviderTypeEmail)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			// Google-only accounts have no password to check.
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// bcrypt is CPU-bound; keep it outside any transaction.
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return srv.issueTokens(ctx, user)
}

// GoogleLogin signs in with a Google ID token, linking or creating the account by email.
func (srv *authService) GoogleLogin(ctx context.Context, idToken string) (*usecase.AuthOutput, error) {
	oauthUser, err := srv.googleAuthService.VerifyIDToken(ctx, idToken)
	if err != nil {
		srv.log(ctx).Warn("Google ID token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrGoogleTokenInvalid
	}
	if oauthUser.Email == "" || !oauthUser.EmailVerified {
		return nil, domainerrors.ErrGoogleTokenInvalid.WithDetails("google account email is not verified")
	}

	email := entity.NormalizeEmail(oauthUser.Email)
	provider := srv.googleAuthService.GetProvider()

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()

		authRecord, err := authRepo.FindAuthentication(ctx, provider, oauthUser.ID)
		if err == nil {
			user, err = userRepo.FindByID(ctx, authRecord.UserID)

			return errors.Wrap(err, "failed to load linked user")
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
		}

		user, err = userRepo.FindByEmail(ctx, email)
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			user = &entity.User{
				Email: email,
				Name:  strings.TrimSpace(oauthUser.Name),
				Role:  entity.RoleCustomer,
			}
			if user.Name == "" {
				user.Name = entity.DefaultNameFromEmail(email)
			}
			if err := userRepo.Create(ctx, user); err != nil {
				return errors.Wrap(err, "failed to create user from google account")
			}
		case err != nil:
			return errors.Wrap(err, "failed to look up email")
		}

		return authRepo.CreateAuthentication(ctx, &entity.Authentication{
			UserID:         user.ID,
			Provider:       provider,
			ProviderUserID: oauthUser.ID,
		})
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute google login transaction", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute google login transaction")
	}

	srv.log(ctx).Debug("Google login succeeded", slog.Any("userID", user.ID))

	return srv.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented one is revoked and a new pair issued.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	tokenHash := hashSecret(refreshToken)
	stored, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	if stored.UserID != claims.UserID || stored.IsExpired(srv.now()) {
		srv.revoke(ctx, tokenHash)

		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.revoke(ctx, tokenHash)

			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		return nil, errors.Wrap(err, "failed to revoke refresh token")
	}

	return srv.issueTokens(ctx, user)
}

// Logout revokes the session; unknown tokens are ignored.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, hashSecret(refreshToken))
	if err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return errors.Wrap(err, "failed to revoke refresh token")
	}

	return nil
}

func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// DeleteAccount removes the user with every session and credential.
func (srv *authService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			return err
		}

		if err := repoFactory.NewRefreshTokenRepository().DeleteRefreshTokensByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions")
		}

		return userRepo.Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete account")
	}

	srv.log(ctx).Info("Account deleted", slog.Any("userID", userID))

	return nil
}

func (srv *authService) issueTokens(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, []string{user.Role.String()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	now := srv.now()
	if err := srv.refreshTokenRepo.CreateRefreshToken(ctx, &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashSecret(refreshToken),
		ExpiresAt: now.Add(srv.tokenService.GetRefreshTokenDuration()),
		CreatedAt: now,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(srv.tokenService.GetAccessTokenDuration().Seconds()),
		User:         user,
	}, nil
}

func (srv *authService) revoke(ctx context.Context, tokenHash string) {
	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
		srv.log(ctx).Warn("Failed to revoke refresh token", slog.Any("error", err))
	}
}
