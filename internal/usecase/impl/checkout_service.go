package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "lumera/internal/delivery/context"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/pricing"
	"lumera/internal/domain/repository"
	"lumera/internal/domain/service"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"go.uber.org/fx"
)

const receiptTokenLength = 6

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	pricer   *orderPricer
	carts    repository.CartRepository
	gateway  service.PaymentGateway
	currency string
	now      func() time.Time
	logger   *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	Calculator  *pricing.Calculator
	ProductRepo repository.ProductRepository
	CouponRepo  repository.CouponRepository
	CartRepo    repository.CartRepository
	Gateway     service.PaymentGateway
	Logger      *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		pricer: &orderPricer{
			calc:     params.Calculator,
			products: params.ProductRepo,
			coupons:  params.CouponRepo,
			now:      time.Now,
		},
		carts:    params.CartRepo,
		gateway:  params.Gateway,
		currency: "INR",
		now:      time.Now,
		logger:   params.Logger,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Quote prices the checkout with a server-validated coupon.
func (srv *checkoutService) Quote(ctx context.Context, input *usecase.QuoteInput) (*usecase.QuoteOutput, error) {
	items, err := srv.loadItems(ctx, input)
	if err != nil {
		return nil, err
	}

	priced, err := srv.pricer.price(ctx, items, input.OrderNote, input.CouponCode)
	if err != nil {
		return nil, err
	}

	return &usecase.QuoteOutput{Items: priced.Items, Breakdown: priced.Breakdown}, nil
}

// CreatePaymentOrder prices the checkout and registers the amount with the gateway.
func (srv *checkoutService) CreatePaymentOrder(ctx context.Context, input *usecase.PaymentOrderInput) (*usecase.PaymentOrderOutput, error) {
	items, err := srv.loadItems(ctx, &input.QuoteInput)
	if err != nil {
		return nil, err
	}

	priced, err := srv.pricer.price(ctx, items, input.OrderNote, input.CouponCode)
	if err != nil {
		return nil, err
	}

	if priced.Breakdown.Total <= 0 {
		return nil, domainerrors.ErrInvalidInput.WithDetails("order total must be positive")
	}
	if priced.Breakdown.Total > pricing.MaxPayableTotal {
		return nil, domainerrors.ErrInvalidInput.WithDetails("order total exceeds the payable limit")
	}

	receipt, err := newReceipt(srv.now())
	if err != nil {
		return nil, err
	}

	notes := map[string]string{
		"email": entity.NormalizeEmail(input.Address.Email),
		"phone": input.Address.Phone,
	}
	if priced.Breakdown.CouponCode != "" {
		notes["coupon"] = priced.Breakdown.CouponCode
	}
	if input.CartID != "" {
		notes["cart_id"] = input.CartID
	}

	amount := pricing.ToPaise(priced.Breakdown.Total)
	gatewayOrder, err := srv.gateway.CreateOrder(ctx, amount, receipt, notes)
	if err != nil {
		srv.log(ctx).Error("Failed to create gateway order",
			slog.Any("error", err),
			slog.String("receipt", receipt),
			slog.Int64("amount", amount),
		)

		return nil, errors.Wrap(domainerrors.ErrPaymentGatewayUnavailable, "failed to create gateway order")
	}

	srv.log(ctx).Info("Gateway order created",
		slog.String("razorpay_order_id", gatewayOrder.ID),
		slog.String("receipt", receipt),
		slog.Int64("amount", gatewayOrder.Amount),
	)

	currency := gatewayOrder.Currency
	if currency == "" {
		currency = srv.currency
	}

	return &usecase.PaymentOrderOutput{
		RazorpayOrderID: gatewayOrder.ID,
		Amount:          gatewayOrder.Amount,
		Currency:        currency,
		KeyID:           gatewayOrder.KeyID,
		Receipt:         receipt,
		Breakdown:       priced.Breakdown,
	}, nil
}

// loadItems returns the stored cart's lines when a cart id is given, else the submitted items.
func (srv *checkoutService) loadItems(ctx context.Context, input *usecase.QuoteInput) ([]entity.CartItem, error) {
	if input.CartID == "" {
		return input.Items, nil
	}

	cart, err := srv.carts.Get(ctx, input.CartID)
	if err != nil {
		return nil, mapCartError(err)
	}

	return cart.Items, nil
}

// newReceipt returns rcpt_<unix ms>_<random>.
func newReceipt(now time.Time) (string, error) {
	token, err := randomString(rand.Reader, receiptAlphabet, receiptTokenLength)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate receipt")
	}

	return fmt.Sprintf("rcpt_%d_%s", now.UnixMilli(), token), nil
}
