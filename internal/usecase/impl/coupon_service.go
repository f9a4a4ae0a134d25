package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "lumera/internal/delivery/context"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/google/uuid"
)

const maxPercentage = 100

// couponService implements the CouponUsecase interface.
type couponService struct {
	coupons repository.CouponRepository
	now     func() time.Time
	logger  *slog.Logger
}

// NewCouponService is the constructor for couponService.
func NewCouponService(couponRepo repository.CouponRepository, logger *slog.Logger) usecase.CouponUsecase {
	return &couponService{
		coupons: couponRepo,
		now:     time.Now,
		logger:  logger,
	}
}

func (srv *couponService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *couponService) List(ctx context.Context) ([]*entity.Coupon, error) {
	coupons, err := srv.coupons.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list coupons")
	}

	return coupons, nil
}

func (srv *couponService) Get(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	coupon, err := srv.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, mapCouponError(err)
	}

	return coupon, nil
}

func (srv *couponService) Create(ctx context.Context, input *usecase.CreateCouponInput) (*entity.Coupon, error) {
	now := srv.now()
	coupon := &entity.Coupon{
		ID:             uuid.New(),
		Code:           entity.NormalizeCouponCode(input.Code),
		Type:           entity.CouponType(input.Type),
		Value:          input.Value,
		MinOrderAmount: input.MinOrderAmount,
		Active:         true,
		ExpiresAt:      input.ExpiresAt,
		UsageLimit:     input.UsageLimit,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if input.Active != nil {
		coupon.Active = *input.Active
	}

	if err := validateCoupon(coupon); err != nil {
		return nil, err
	}

	if err := srv.coupons.Create(ctx, coupon); err != nil {
		return nil, mapCouponError(err)
	}
	srv.log(ctx).Info("Coupon created", slog.String("code", coupon.Code), slog.String("type", string(coupon.Type)))

	return coupon, nil
}

func (srv *couponService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateCouponInput) (*entity.Coupon, error) {
	coupon, err := srv.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, mapCouponError(err)
	}

	if input.Code != nil {
		coupon.Code = entity.NormalizeCouponCode(*input.Code)
	}
	if input.Type != nil {
		coupon.Type = entity.CouponType(*input.Type)
	}
	if input.Value != nil {
		coupon.Value = *input.Value
	}
	if input.MinOrderAmount != nil {
		coupon.MinOrderAmount = *input.MinOrderAmount
	}
	if input.Active != nil {
		coupon.Active = *input.Active
	}
	if input.ExpiresAt != nil {
		coupon.ExpiresAt = input.ExpiresAt
	}
	if input.ClearExpiry {
		coupon.ExpiresAt = nil
	}
	if input.UsageLimit != nil {
		coupon.UsageLimit = input.UsageLimit
	}
	if input.ClearLimit {
		coupon.UsageLimit = nil
	}
	coupon.UpdatedAt = srv.now()

	if err := validateCoupon(coupon); err != nil {
		return nil, err
	}

	if err := srv.coupons.Update(ctx, coupon); err != nil {
		return nil, mapCouponError(err)
	}
	srv.log(ctx).Info("Coupon updated", slog.String("code", coupon.Code))

	return coupon, nil
}

func (srv *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.coupons.Delete(ctx, id); err != nil {
		return mapCouponError(err)
	}
	srv.log(ctx).Info("Coupon deleted", slog.Any("coupon_id", id))

	return nil
}

// Validate applies the same rules checkout does.
func (srv *couponService) Validate(ctx context.Context, code string, subtotal int64) (*usecase.CouponValidation, error) {
	code = entity.NormalizeCouponCode(code)
	if code == "" {
		return nil, domainerrors.ErrCouponNotFound
	}

	coupon, err := srv.coupons.FindByCode(ctx, code)
	if err != nil {
		return nil, mapCouponError(err)
	}

	discount, err := coupon.Evaluate(subtotal, srv.now())
	if err != nil {
		srv.log(ctx).Debug("Coupon rejected", slog.String("code", code), slog.Any("error", err))

		return nil, err
	}

	return &usecase.CouponValidation{
		Code:     coupon.Code,
		Type:     coupon.Type,
		Value:    coupon.Value,
		Discount: discount,
	}, nil
}

func validateCoupon(c *entity.Coupon) error {
	fields := map[string]string{}

	if c.Code == "" {
		fields["code"] = "required"
	}
	if !c.Type.IsValid() {
		fields["type"] = "oneof percentage fixed"
	}
	if c.Value <= 0 {
		fields["value"] = "gt 0"
	} else if c.Type == entity.CouponTypePercentage && c.Value > maxPercentage {
		fields["value"] = "lte 100"
	}
	if c.MinOrderAmount < 0 {
		fields["minOrderAmount"] = "gte 0"
	}
	if c.UsageLimit != nil && *c.UsageLimit < 0 {
		fields["usageLimit"] = "gte 0"
	}

	if len(fields) > 0 {
		return domainerrors.NewValidationError(fields)
	}

	return nil
}

func mapCouponError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCouponNotFound):
		return domainerrors.ErrCouponNotFound
	case errors.Is(err, repository.ErrCouponCodeExists):
		return domainerrors.ErrCouponCodeTaken
	default:
		return errors.Wrap(err, "coupon store failed")
	}
}
