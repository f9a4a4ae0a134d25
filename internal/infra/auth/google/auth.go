// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"log/slog"

	"lumera/config"
	"lumera/internal/domain/entity"
	"lumera/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// validateFunc matches idtoken.Validate.
type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// AuthServiceImpl implements service.OAuthAuthService for Google ID tokens.
type AuthServiceImpl struct {
	clientID string
	validate validateFunc
	logger   *slog.Logger
}

// NewAuthService creates a new Google AuthService
func NewAuthService(cfg *config.Config, logger *slog.Logger) service.OAuthAuthService {
	clientID := ""
	if cfg.GoogleOAuth != nil {
		clientID = cfg.GoogleOAuth.ClientID
	}

	return &AuthServiceImpl{
		clientID: clientID,
		validate: idtoken.Validate,
		logger:   logger,
	}
}

// VerifyIDToken checks the token's signature, issuer, audience and expiry
// against Google's published keys and returns the signed-in user.
func (s *AuthServiceImpl) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	if s.clientID == "" {
		return nil, errors.New("google client id is not configured")
	}

	payload, err := s.validate(ctx, idToken, s.clientID)
	if err != nil {
		s.logger.Warn("Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "token verification failed")
	}

	user := userFromClaims(payload.Subject, payload.Claims)
	if user.Email == "" {
		return nil, errors.New("token has no email claim")
	}

	if !user.EmailVerified {
		return nil, errors.New("email not verified")
	}

	s.logger.Info("Google ID token verified",
		slog.String("subject", user.ID),
		slog.String("email", user.Email))

	return user, nil
}

// GetProvider returns the OAuth provider type
func (s *AuthServiceImpl) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

func userFromClaims(subject string, claims map[string]any) *service.OAuthUser {
	user := &service.OAuthUser{
		ID:       subject,
		Provider: entity.ProviderTypeGoogle,
	}

	user.Email, _ = claims["email"].(string)
	user.Name, _ = claims["name"].(string)
	user.AvatarURL, _ = claims["picture"].(string)

	switch v := claims["email_verified"].(type) {
	case bool:
		user.EmailVerified = v
	case string:
		user.EmailVerified = v == "true"
	}

	return user
}
