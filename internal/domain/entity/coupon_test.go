package entity

import (
	"testing"
	"time"

	domainerrors "lumera/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoupon_Evaluate(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	limit := 5

	tests := []struct {
		name     string
		coupon   Coupon
		subtotal int64
		want     int64
		wantErr  error
	}{
		{
			name:     "percentage",
			coupon:   Coupon{Code: "LUMERA10", Type: CouponTypePercentage, Value: 10, Active: true},
			subtotal: 850,
			want:     85,
		},
		{
			name:     "percentage rounds half up",
			coupon:   Coupon{Type: CouponTypePercentage, Value: 10, Active: true},
			subtotal: 855,
			want:     86,
		},
		{
			name:     "fixed capped at subtotal",
			coupon:   Coupon{Type: CouponTypeFixed, Value: 500, Active: true},
			subtotal: 300,
			want:     300,
		},
		{
			name:     "not expired yet",
			coupon:   Coupon{Type: CouponTypeFixed, Value: 100, Active: true, ExpiresAt: &future},
			subtotal: 1000,
			want:     100,
		},
		{
			name:     "inactive",
			coupon:   Coupon{Type: CouponTypeFixed, Value: 100},
			subtotal: 1000,
			wantErr:  domainerrors.ErrCouponInactive,
		},
		{
			name:     "expired",
			coupon:   Coupon{Type: CouponTypeFixed, Value: 100, Active: true, ExpiresAt: &past},
			subtotal: 1000,
			wantErr:  domainerrors.ErrCouponExpired,
		},
		{
			name:     "usage exhausted",
			coupon:   Coupon{Type: CouponTypeFixed, Value: 100, Active: true, UsageLimit: &limit, UsageCount: 5},
			subtotal: 1000,
			wantErr:  domainerrors.ErrCouponUsageExceeded,
		},
		{
			name:     "below minimum",
			coupon:   Coupon{Type: CouponTypePercentage, Value: 20, Active: true, MinOrderAmount: 1500},
			subtotal: 1499,
			wantErr:  domainerrors.ErrCouponMinimumNotMet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.coupon.Evaluate(tt.subtotal, now)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "FIRST20", NormalizeCouponCode("  first20 "))
}
