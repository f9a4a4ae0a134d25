package service

import (
	"time"

	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the validated content of a token.
type Claims struct {
	UserID    uuid.UUID
	Roles     []string
	Type      string
	ExpiresAt time.Time
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uuid.UUID, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token's signature, expiry and type.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks a refresh token's signature, expiry and type.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// GetAccessTokenDuration returns the configured duration for access tokens.
	GetAccessTokenDuration() time.Duration

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
