package model

import (
	"time"

	"github.com/google/uuid"
)

// CouponModel mirrors the 'coupons' table.
type CouponModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code           string     `gorm:"type:varchar(50);unique;not null"`
	Type           string     `gorm:"type:varchar(20);not null"`
	Value          int64      `gorm:"not null"`
	MinOrderAmount int64      `gorm:"not null;default:0"`
	Active         bool       `gorm:"not null"`
	ExpiresAt      *time.Time `gorm:"type:timestamptz"`
	UsageLimit     *int       `gorm:"type:integer"`
	UsageCount     int        `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (CouponModel) TableName() string {
	return "coupons"
}
