// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"lumera/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to create a customer account.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// LoginInput defines the data required for a customer to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the issued tokens together with the signed-in user.
type AuthOutput struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn"` // Access token lifetime in seconds.
	User         *entity.User `json:"user"`
}

// AuthUsecase defines account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	GoogleLogin(ctx context.Context, idToken string) (*AuthOutput, error)

	// Refresh rotates a refresh token: the presented token is revoked and a new pair issued.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes a refresh token. Unknown tokens are ignored.
	Logout(ctx context.Context, refreshToken string) error

	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// PasswordResetUsecase implements the emailed one-time-code reset flow.
type PasswordResetUsecase interface {
	// ForgotPassword issues a fresh code for email, replacing any pending one, and mails it.
	ForgotPassword(ctx context.Context, email string) error

	// VerifyOTP checks a code without consuming it.
	VerifyOTP(ctx context.Context, email, otp string) error

	// ResetPassword re-checks the code, replaces the password and ends every session.
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}
