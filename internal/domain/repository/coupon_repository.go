package repository

import (
	"context"

	"lumera/internal/domain/entity"
	"lumera/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrCouponNotFound is returned when no coupon matches.
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrCouponCodeExists is returned when a coupon code is already taken.
	ErrCouponCodeExists = errors.New("coupon code already exists")
)

// CouponRepository persists discount codes.
type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	Update(ctx context.Context, coupon *entity.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error)

	// FindByCode looks a coupon up by its normalized code.
	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)

	List(ctx context.Context) ([]*entity.Coupon, error)

	// IncrementUsage records one redemption of the coupon.
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}
