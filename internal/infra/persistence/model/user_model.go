// Package model holds the GORM persistence models mirroring the PostgreSQL schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email      string    `gorm:"type:varchar(255);unique;not null"`
	Name       string    `gorm:"type:varchar(100)"`
	Phone      string    `gorm:"type:varchar(20)"`
	Role       string    `gorm:"type:varchar(20);not null;default:customer"`
	Newsletter bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Authentications []AuthenticationModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
