package entity

import (
	"strings"
	"time"

	domainerrors "lumera/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponType determines how Value is interpreted.
type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

// IsValid checks if the CouponType is a valid value.
func (t CouponType) IsValid() bool {
	return t == CouponTypePercentage || t == CouponTypeFixed
}

// Coupon is a discount code managed by the shop administrators.
type Coupon struct {
	ID             uuid.UUID
	Code           string // Stored upper-cased; unique.
	Type           CouponType
	Value          int64 // Percent for percentage coupons, rupees for fixed ones.
	MinOrderAmount int64
	Active         bool
	ExpiresAt      *time.Time
	UsageLimit     *int
	UsageCount     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeCouponCode upper-cases and trims a coupon code as typed by a customer.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate checks that the coupon can be applied to an order with the given
// subtotal at now and returns the discount in rupees. The discount never
// exceeds the subtotal.
func (c *Coupon) Evaluate(subtotal int64, now time.Time) (int64, error) {
	if !c.Active {
		return 0, domainerrors.ErrCouponInactive
	}

	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return 0, domainerrors.ErrCouponExpired
	}

	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return 0, domainerrors.ErrCouponUsageExceeded
	}

	if subtotal < c.MinOrderAmount {
		return 0, domainerrors.ErrCouponMinimumNotMet.WithDetails(
			"minimum order amount is " + decimal.NewFromInt(c.MinOrderAmount).String(),
		)
	}

	var discount int64
	switch c.Type {
	case CouponTypePercentage:
		discount = PercentOf(subtotal, c.Value)
	case CouponTypeFixed:
		discount = c.Value
	}

	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}

	return discount, nil
}

// PercentOf returns percent% of amount rounded half-up to whole rupees.
func PercentOf(amount, percent int64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(percent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
