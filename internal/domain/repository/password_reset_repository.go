package repository

import (
	"context"

	"lumera/internal/domain/entity"
	"lumera/internal/errors"
)

// ErrOTPNotFound is returned when no reset code is pending for an email.
var ErrOTPNotFound = errors.New("password reset code not found")

// PasswordResetRepository keeps at most one pending reset code per email.
type PasswordResetRepository interface {
	// Upsert stores otp, replacing any pending code for the same email.
	Upsert(ctx context.Context, otp *entity.PasswordResetOTP) error

	// FindByEmail returns the pending code for email.
	FindByEmail(ctx context.Context, email string) (*entity.PasswordResetOTP, error)

	// RecordFailedAttempt increments the wrong-guess counter of the pending code
	// for email and returns the new count.
	RecordFailedAttempt(ctx context.Context, email string) (int, error)

	// DeleteByEmail discards the pending code for email.
	DeleteByEmail(ctx context.Context, email string) error
}
