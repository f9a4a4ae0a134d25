// Package service declares the ports the usecases reach infrastructure through.
package service

import (
	"context"

	"lumera/internal/domain/entity"
)

// PasswordHasher hashes and checks account passwords. Only hashes are stored.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// OAuthUser is the identity asserted by a verified provider ID token.
type OAuthUser struct {
	ID            string // Provider subject, e.g. Google's "sub"
	Email         string
	Name          string
	Provider      entity.ProviderType
	AvatarURL     string
	EmailVerified bool
}

// OAuthAuthService verifies sign-in ID tokens issued to the storefront's client id.
type OAuthAuthService interface {
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
	GetProvider() entity.ProviderType
}
