// Package entity contains the core business objects of the storefront,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a storefront account: a customer or a shop administrator.
type User struct {
	ID         uuid.UUID
	Email      string // Lower-cased, trimmed; the login identifier.
	Name       string
	Phone      string
	Role       Role
	Newsletter bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultNameFromEmail returns the local part of an email, used when no name is given.
func DefaultNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")

	return local
}
