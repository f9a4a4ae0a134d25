package postgres

import (
	"context"

	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// authRepository implements repository.AuthRepository.
type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository creates a new instance of authRepository.
func NewAuthRepository(db *gorm.DB) repository.AuthRepository {
	return &authRepository{db: db}
}

// CreateAuthentication persists a new authentication method.
func (r *authRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	authM := fromAuthenticationDomain(auth)

	if err := r.db.WithContext(ctx).Create(authM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("credential already linked")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("credential owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create authentication")
	}

	auth.ID = authM.ID
	auth.CreatedAt = authM.CreatedAt
	auth.UpdatedAt = authM.UpdatedAt

	return nil
}

// FindAuthentication retrieves an authentication method by provider and provider user ID.
func (r *authRepository) FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error) {
	var authM model.AuthenticationModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND provider_user_id = ?", string(provider), providerUserID).
		First(&authM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAuthNotFound
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	return toAuthenticationDomain(&authM), nil
}

// FindAuthenticationByUserID retrieves the user's credential for provider.
func (r *authRepository) FindAuthenticationByUserID(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.Authentication, error) {
	var authM model.AuthenticationModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, string(provider)).
		First(&authM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAuthNotFound
		}

		return nil, errors.Wrap(err, "failed to find authentication by user")
	}

	return toAuthenticationDomain(&authM), nil
}

// UpdatePasswordHash replaces the hash of the user's email/password credential.
func (r *authRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&model.AuthenticationModel{}).
		Where("user_id = ? AND provider = ?", userID, string(entity.ProviderTypeEmail)).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAuthNotFound
	}

	return nil
}

func toAuthenticationDomain(m *model.AuthenticationModel) *entity.Authentication {
	return &entity.Authentication{
		ID:             m.ID,
		UserID:         m.UserID,
		Provider:       entity.ProviderType(m.Provider),
		ProviderUserID: m.ProviderUserID,
		PasswordHash:   m.PasswordHash,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromAuthenticationDomain(a *entity.Authentication) *model.AuthenticationModel {
	return &model.AuthenticationModel{
		ID:             a.ID,
		UserID:         a.UserID,
		Provider:       string(a.Provider),
		ProviderUserID: a.ProviderUserID,
		PasswordHash:   a.PasswordHash,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
