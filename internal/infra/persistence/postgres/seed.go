package postgres

import (
	"context"
	"log/slog"

	"lumera/config"
	"lumera/internal/domain/entity"
	"lumera/internal/errors"
	"lumera/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCoupons inserts the configured launch coupons. Existing codes are left untouched
// so administrators can edit or disable them.
func SeedCoupons(ctx context.Context, db *gorm.DB, seeds []config.SeedCoupon, logger *slog.Logger) error {
	for _, seed := range seeds {
		couponType := entity.CouponType(seed.Type)
		if !couponType.IsValid() {
			return errors.Errorf("seed coupon %s has invalid type %q", seed.Code, seed.Type)
		}

		couponM := &model.CouponModel{
			Code:           entity.NormalizeCouponCode(seed.Code),
			Type:           string(couponType),
			Value:          seed.Value,
			MinOrderAmount: seed.MinOrderAmount,
			Active:         true,
		}

		result := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
			Create(couponM)
		if result.Error != nil {
			return errors.Wrapf(result.Error, "failed to seed coupon %s", seed.Code)
		}

		if result.RowsAffected > 0 {
			logger.Info("Seeded coupon", slog.String("code", couponM.Code))
		}
	}

	return nil
}
