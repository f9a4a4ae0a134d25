package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType names a login method.
type ProviderType string

const (
	ProviderTypeEmail  ProviderType = "email"
	ProviderTypeGoogle ProviderType = "google"
)

// Authentication represents a single credential linked to a user.
// An email/password login is one record, a linked Google account another.
type Authentication struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Provider       ProviderType
	ProviderUserID string // Google "sub" claim, or the email for password logins.
	PasswordHash   string // bcrypt hash, only set for ProviderTypeEmail.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RefreshToken represents a long-lived session. Only a SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session is no longer usable at now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// MaxOTPAttempts is how many wrong guesses discard a pending reset code.
const MaxOTPAttempts = 5

// PasswordResetOTP is a one-time code sent by email to confirm a password reset.
type PasswordResetOTP struct {
	ID        uuid.UUID
	Email     string
	CodeHash  string // SHA-256 of the 6-digit code.
	Attempts  int    // Wrong guesses so far.
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the code can no longer be redeemed at now.
func (o *PasswordResetOTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
