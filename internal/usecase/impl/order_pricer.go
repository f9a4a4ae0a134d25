package impl

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"lumera/internal/domain/configurator"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/pricing"
	"lumera/internal/domain/repository"
	"lumera/internal/errors"
)

// orderPricer prices checkout lines from server-side data only: catalog
// products are re-read, custom candles re-priced, coupons looked up.
type orderPricer struct {
	calc     *pricing.Calculator
	products repository.ProductRepository
	coupons  repository.CouponRepository
	now      func() time.Time
}

type pricedOrder struct {
	Items     []entity.CartItem
	Breakdown pricing.Breakdown
	Coupon    *entity.Coupon
}

func (p *orderPricer) price(ctx context.Context, items []entity.CartItem, note, couponCode string) (*pricedOrder, error) {
	if len(items) == 0 {
		return nil, domainerrors.ErrCartEmpty
	}
	if i := entity.CheckQuantities(items); i >= 0 {
		return nil, domainerrors.NewValidationError(map[string]string{
			fmt.Sprintf("items[%d].quantity", i): fmt.Sprintf("between 1 and %d", entity.MaxItemQuantity),
		})
	}

	resolved, err := p.resolveItems(ctx, items)
	if err != nil {
		return nil, err
	}

	coupon, discount, err := p.applyCoupon(ctx, couponCode, p.calc.Subtotal(resolved))
	if err != nil {
		return nil, err
	}

	breakdown := p.calc.Quote(resolved, note, discount)
	if coupon != nil {
		breakdown.CouponCode = coupon.Code
	}

	return &pricedOrder{Items: resolved, Breakdown: breakdown, Coupon: coupon}, nil
}

func (p *orderPricer) resolveItems(ctx context.Context, items []entity.CartItem) ([]entity.CartItem, error) {
	resolved := make([]entity.CartItem, 0, len(items))

	for _, item := range items {
		quantity := item.Quantity

		if item.Configuration != nil {
			custom, err := repriceCustom(item)
			if err != nil {
				return nil, err
			}
			custom.Quantity = quantity
			resolved = append(resolved, custom)

			continue
		}

		product, err := p.products.FindByID(ctx, item.ID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductNotFound.WithDetails("product " + item.ID)
			}

			return nil, errors.Wrap(err, "failed to load product")
		}

		if !product.IsPurchasable() {
			return nil, domainerrors.ErrProductUnavailable.WithDetails(product.Name)
		}

		resolved = append(resolved, product.ToCartItem(quantity, item.Collection))
	}

	return resolved, nil
}

// repriceCustom recomputes a configurator line from its snapshot.
func repriceCustom(item entity.CartItem) (entity.CartItem, error) {
	cfg := configurationFromSnapshot(item.Configuration)

	if problems := cfg.Validate(); len(problems) > 0 {
		return entity.CartItem{}, domainerrors.ErrInvalidConfiguration.WithDetails(describeProblems(problems))
	}
	if !cfg.CanAddToBag() {
		return entity.CartItem{}, domainerrors.ErrInvalidConfiguration.WithDetails("vessel, scent, wax type and wick are required")
	}

	item.Price = cfg.Price()
	item.CompareAtPrice = nil

	return item, nil
}

func configurationFromSnapshot(s *entity.CandleConfigurationSnapshot) configurator.Configuration {
	return configurator.Configuration{
		Vessel:           s.Vessel,
		FragranceFamily:  s.FragranceFamily,
		FragranceMode:    s.FragranceMode,
		PrimaryScent:     s.PrimaryScent,
		WaxType:          s.WaxType,
		WaxColor:         s.WaxColor,
		WickType:         s.WickType,
		LabelText:        s.LabelText,
		FoilFinish:       s.FoilFinish,
		FinishingTouches: s.FinishingTouches,
		Packaging:        s.Packaging,
	}
}

func describeProblems(problems map[string]string) string {
	fields := make([]string, 0, len(problems))
	for field := range problems {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, problems[field]))
	}

	return strings.Join(parts, "; ")
}

// applyCoupon resolves code against the stored coupons. An empty code means no discount.
func (p *orderPricer) applyCoupon(ctx context.Context, code string, subtotal int64) (*entity.Coupon, int64, error) {
	code = entity.NormalizeCouponCode(code)
	if code == "" {
		return nil, 0, nil
	}

	coupon, err := p.coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return nil, 0, domainerrors.ErrCouponNotFound
		}

		return nil, 0, errors.Wrap(err, "failed to load coupon")
	}

	discount, err := coupon.Evaluate(subtotal, p.now())
	if err != nil {
		return nil, 0, err
	}

	return coupon, discount, nil
}

func isCouponError(err error) bool {
	return errors.IsAny(err,
		domainerrors.ErrCouponNotFound,
		domainerrors.ErrCouponInactive,
		domainerrors.ErrCouponExpired,
		domainerrors.ErrCouponUsageExceeded,
		domainerrors.ErrCouponMinimumNotMet,
	)
}
