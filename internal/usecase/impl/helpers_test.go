package impl

import (
	"io"
	"log/slog"
	"time"

	"lumera/internal/domain/entity"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, time.May, 14, 10, 30, 0, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock() time.Time {
	return testNow
}

func activeProduct(id string, price int64) *entity.Product {
	return &entity.Product{
		ID:      id,
		Name:    "Amber Noir",
		Slug:    "amber-noir",
		Status:  entity.ProductStatusActive,
		Pricing: entity.ProductPricing{Price: price},
	}
}

func percentCoupon(code string, percent int64) *entity.Coupon {
	return &entity.Coupon{
		ID:     uuid.New(),
		Code:   code,
		Type:   entity.CouponTypePercentage,
		Value:  percent,
		Active: true,
	}
}
