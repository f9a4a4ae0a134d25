// Package repository declares the persistence ports. Lookups report misses
// with the sentinel errors declared next to each interface.
package repository

import (
	"context"

	"lumera/internal/domain/entity"
	"lumera/internal/errors"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository stores customer and admin accounts. Emails are stored normalized.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create fails with domain ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the account; credentials and refresh tokens cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}
