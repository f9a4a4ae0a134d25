package model

import (
	"time"

	"lumera/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderModel mirrors the 'orders' table. Snapshots that are never queried
// column-wise are stored as JSONB.
type OrderModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderNumber string     `gorm:"type:varchar(20);unique;not null"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`

	Email     string `gorm:"type:varchar(255);not null;index"`
	Phone     string `gorm:"type:varchar(20)"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`

	ShippingAddress datatypes.JSONType[entity.OrderAddress] `gorm:"type:jsonb;not null"`
	Items           datatypes.JSONSlice[entity.OrderItem]   `gorm:"type:jsonb;not null"`
	Pricing         datatypes.JSONType[entity.OrderPricing] `gorm:"type:jsonb;not null"`

	PaymentMethod         string     `gorm:"type:varchar(20)"`
	PaymentStatus         string     `gorm:"type:varchar(20);not null"`
	TransactionID         *string    `gorm:"type:varchar(100);unique"`
	MerchantTransactionID string     `gorm:"type:varchar(100)"`
	PaidAt                *time.Time `gorm:"type:timestamptz"`
	RefundID              string     `gorm:"type:varchar(100)"`
	RefundedAmount        int64      `gorm:"not null;default:0"`

	Status        string                                        `gorm:"type:varchar(30);not null;index"`
	Fulfillment   datatypes.JSONType[entity.OrderFulfillment]   `gorm:"type:jsonb"`
	CustomerNotes string                                        `gorm:"type:text"`
	StatusHistory datatypes.JSONSlice[entity.OrderStatusChange] `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
