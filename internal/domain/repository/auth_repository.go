package repository

import (
	"context"

	"lumera/internal/domain/entity"
	"lumera/internal/errors"

	"github.com/google/uuid"
)

// ErrAuthNotFound is returned when an authentication method is not found.
var ErrAuthNotFound = errors.New("authentication method not found")

// AuthRepository persists login credentials. Password hashes live only here.
type AuthRepository interface {
	// CreateAuthentication persists a new authentication method (email/password or Google).
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication retrieves an authentication method by its provider and provider-specific ID.
	FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error)

	// FindAuthenticationByUserID retrieves the user's credential for a provider.
	FindAuthenticationByUserID(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.Authentication, error)

	// UpdatePasswordHash replaces the stored hash of an email/password credential.
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error
}
