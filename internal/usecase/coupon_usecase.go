package usecase

import (
	"context"
	"time"

	"lumera/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateCouponInput defines a new discount code.
type CreateCouponInput struct {
	Code           string
	Type           string
	Value          int64
	MinOrderAmount int64
	Active         *bool // Defaults to true.
	ExpiresAt      *time.Time
	UsageLimit     *int
}

// UpdateCouponInput changes the set fields only.
type UpdateCouponInput struct {
	Code           *string
	Type           *string
	Value          *int64
	MinOrderAmount *int64
	Active         *bool
	ExpiresAt      *time.Time
	UsageLimit     *int
	ClearExpiry    bool
	ClearLimit     bool
}

// CouponValidation is the result of checking a code against a subtotal.
type CouponValidation struct {
	Code     string            `json:"code"`
	Type     entity.CouponType `json:"type"`
	Value    int64             `json:"value"`
	Discount int64             `json:"discount"`
}

// CouponUsecase manages discount codes and validates them for checkout.
type CouponUsecase interface {
	List(ctx context.Context) ([]*entity.Coupon, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Coupon, error)
	Create(ctx context.Context, input *CreateCouponInput) (*entity.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateCouponInput) (*entity.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Validate returns the discount the code grants on subtotal right now.
	Validate(ctx context.Context, code string, subtotal int64) (*CouponValidation, error)
}
