package postgres

import (
	"context"

	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a repository for one-time reset codes.
func NewPasswordResetRepository(db *gorm.DB) repository.PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Upsert replaces any pending code for the same email.
func (r *passwordResetRepository) Upsert(ctx context.Context, otp *entity.PasswordResetOTP) error {
	otpM := &model.PasswordResetOTPModel{
		ID:        otp.ID,
		Email:     otp.Email,
		CodeHash:  otp.CodeHash,
		Attempts:  otp.Attempts,
		ExpiresAt: otp.ExpiresAt,
		CreatedAt: otp.CreatedAt,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"code_hash", "attempts", "expires_at", "created_at"}),
		}).
		Create(otpM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to store password reset code")
	}

	otp.ID = otpM.ID

	return nil
}

func (r *passwordResetRepository) FindByEmail(ctx context.Context, email string) (*entity.PasswordResetOTP, error) {
	var otpM model.PasswordResetOTPModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&otpM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOTPNotFound
		}

		return nil, errors.Wrap(err, "failed to find password reset code")
	}

	return &entity.PasswordResetOTP{
		ID:        otpM.ID,
		Email:     otpM.Email,
		CodeHash:  otpM.CodeHash,
		Attempts:  otpM.Attempts,
		ExpiresAt: otpM.ExpiresAt,
		CreatedAt: otpM.CreatedAt,
	}, nil
}

// RecordFailedAttempt bumps the counter in a single statement so concurrent
// guesses cannot share a count.
func (r *passwordResetRepository) RecordFailedAttempt(ctx context.Context, email string) (int, error) {
	var otpM model.PasswordResetOTPModel
	result := r.db.WithContext(ctx).
		Model(&otpM).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "attempts"}}}).
		Where("email = ?", email).
		UpdateColumn("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to record reset code attempt")
	}
	if result.RowsAffected == 0 {
		return 0, repository.ErrOTPNotFound
	}

	return otpM.Attempts, nil
}

func (r *passwordResetRepository) DeleteByEmail(ctx context.Context, email string) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).Delete(&model.PasswordResetOTPModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete password reset code")
	}

	return nil
}
