package postgres

import (
	"context"

	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a GORM-backed coupon repository.
func NewCouponRepository(db *gorm.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	couponM := fromCouponDomain(coupon)

	if err := r.db.WithContext(ctx).Create(couponM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrCouponCodeExists
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("coupon violates a check constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create coupon")
	}

	coupon.ID = couponM.ID
	coupon.CreatedAt = couponM.CreatedAt
	coupon.UpdatedAt = couponM.UpdatedAt

	return nil
}

func (r *couponRepository) Update(ctx context.Context, coupon *entity.Coupon) error {
	result := r.db.WithContext(ctx).
		Model(&model.CouponModel{}).
		Where("id = ?", coupon.ID).
		Updates(map[string]any{
			"code":             coupon.Code,
			"type":             string(coupon.Type),
			"value":            coupon.Value,
			"min_order_amount": coupon.MinOrderAmount,
			"active":           coupon.Active,
			"expires_at":       coupon.ExpiresAt,
			"usage_limit":      coupon.UsageLimit,
			"updated_at":       coupon.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrCouponCodeExists
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update coupon")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCouponNotFound
	}

	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CouponModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete coupon")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCouponNotFound
	}

	return nil
}

func (r *couponRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	return r.findOne(ctx, "code = ?", code)
}

func (r *couponRepository) findOne(ctx context.Context, query string, arg any) (*entity.Coupon, error) {
	var couponM model.CouponModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&couponM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCouponNotFound
		}

		return nil, errors.Wrap(err, "failed to find coupon")
	}

	return toCouponDomain(&couponM), nil
}

func (r *couponRepository) List(ctx context.Context) ([]*entity.Coupon, error) {
	var couponMs []model.CouponModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&couponMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list coupons")
	}

	coupons := make([]*entity.Coupon, 0, len(couponMs))
	for i := range couponMs {
		coupons = append(coupons, toCouponDomain(&couponMs[i]))
	}

	return coupons, nil
}

// IncrementUsage bumps the redemption counter in a single statement.
func (r *couponRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.CouponModel{}).
		Where("id = ?", id).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to record coupon usage")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCouponNotFound
	}

	return nil
}

func toCouponDomain(m *model.CouponModel) *entity.Coupon {
	return &entity.Coupon{
		ID:             m.ID,
		Code:           m.Code,
		Type:           entity.CouponType(m.Type),
		Value:          m.Value,
		MinOrderAmount: m.MinOrderAmount,
		Active:         m.Active,
		ExpiresAt:      m.ExpiresAt,
		UsageLimit:     m.UsageLimit,
		UsageCount:     m.UsageCount,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromCouponDomain(c *entity.Coupon) *model.CouponModel {
	return &model.CouponModel{
		ID:             c.ID,
		Code:           c.Code,
		Type:           string(c.Type),
		Value:          c.Value,
		MinOrderAmount: c.MinOrderAmount,
		Active:         c.Active,
		ExpiresAt:      c.ExpiresAt,
		UsageLimit:     c.UsageLimit,
		UsageCount:     c.UsageCount,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
