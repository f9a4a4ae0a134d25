package impl

import (
	"context"
	"testing"
	"time"

	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/pricing"
	"lumera/internal/domain/repository"
	"lumera/internal/domain/service"
	"lumera/internal/errors"
	mockRepo "lumera/internal/mocks/repository"
	mockSvc "lumera/internal/mocks/service"
	"lumera/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutServiceFixtures struct {
	service  usecase.CheckoutUsecase
	products *mockRepo.MockProductRepository
	coupons  *mockRepo.MockCouponRepository
	carts    *mockRepo.MockCartRepository
	gateway  *mockSvc.MockPaymentGateway
}

func createTestCheckoutService(t *testing.T) checkoutServiceFixtures {
	f := checkoutServiceFixtures{
		products: mockRepo.NewMockProductRepository(t),
		coupons:  mockRepo.NewMockCouponRepository(t),
		carts:    mockRepo.NewMockCartRepository(t),
		gateway:  mockSvc.NewMockPaymentGateway(t),
	}

	svc := NewCheckoutService(CheckoutServiceParams{
		Calculator:  pricing.DefaultCalculator(),
		ProductRepo: f.products,
		CouponRepo:  f.coupons,
		CartRepo:    f.carts,
		Gateway:     f.gateway,
		Logger:      newDiscardLogger(),
	})
	impl := svc.(*checkoutService)
	impl.now = fixedClock
	impl.pricer.now = fixedClock
	f.service = impl

	return f
}

func TestCheckoutService_Quote_WithCoupon(t *testing.T) {
	f := createTestCheckoutService(t)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
	f.coupons.On("FindByCode", mock.Anything, "LUMERA10").Return(percentCoupon("LUMERA10", 10), nil)

	out, err := f.service.Quote(context.Background(), &usecase.QuoteInput{
		Items:      []entity.CartItem{{ID: "prod-1", Price: 1, Quantity: 1}},
		CouponCode: " lumera10 ",
	})

	require.NoError(t, err)
	assert.Equal(t, pricing.Breakdown{
		Subtotal:       850,
		Shipping:       99,
		ShippingMethod: entity.ShippingMethodStandard,
		CouponCode:     "LUMERA10",
		Discount:       85,
		Tax:            132,
		Total:          864,
	}, out.Breakdown)
	assert.Equal(t, int64(850), out.Items[0].Price)
}

func TestCheckoutService_Quote_FromStoredCart(t *testing.T) {
	f := createTestCheckoutService(t)
	f.carts.On("Get", mock.Anything, "cart-1").Return(&entity.Cart{
		ID:    "cart-1",
		Items: []entity.CartItem{{ID: "prod-1", Quantity: 2}},
	}, nil)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 600), nil)

	out, err := f.service.Quote(context.Background(), &usecase.QuoteInput{CartID: "cart-1", OrderNote: "Happy birthday"})

	require.NoError(t, err)
	assert.Equal(t, int64(1200), out.Breakdown.Subtotal)
	assert.Equal(t, int64(0), out.Breakdown.Shipping)
	assert.Equal(t, entity.ShippingMethodFree, out.Breakdown.ShippingMethod)
	assert.Equal(t, int64(49), out.Breakdown.NoteFee)
	assert.Equal(t, int64(1249), out.Breakdown.Total)
}

func TestCheckoutService_Quote_Errors(t *testing.T) {
	expired := testNow.Add(-time.Hour)

	tests := []struct {
		name    string
		setup   func(f checkoutServiceFixtures)
		input   *usecase.QuoteInput
		wantErr error
	}{
		{
			name:    "empty cart",
			setup:   func(checkoutServiceFixtures) {},
			input:   &usecase.QuoteInput{},
			wantErr: domainerrors.ErrCartEmpty,
		},
		{
			name: "missing cart",
			setup: func(f checkoutServiceFixtures) {
				f.carts.On("Get", mock.Anything, "gone").Return(nil, repository.ErrCartNotFound)
			},
			input:   &usecase.QuoteInput{CartID: "gone"},
			wantErr: domainerrors.ErrCartNotFound,
		},
		{
			name: "unknown product",
			setup: func(f checkoutServiceFixtures) {
				f.products.On("FindByID", mock.Anything, "ghost").Return(nil, repository.ErrProductNotFound)
			},
			input:   &usecase.QuoteInput{Items: []entity.CartItem{{ID: "ghost", Quantity: 1}}},
			wantErr: domainerrors.ErrProductNotFound,
		},
		{
			name: "draft product",
			setup: func(f checkoutServiceFixtures) {
				p := activeProduct("prod-1", 850)
				p.Status = entity.ProductStatusDraft
				f.products.On("FindByID", mock.Anything, "prod-1").Return(p, nil)
			},
			input:   &usecase.QuoteInput{Items: []entity.CartItem{{ID: "prod-1", Quantity: 1}}},
			wantErr: domainerrors.ErrProductUnavailable,
		},
		{
			name: "unknown coupon",
			setup: func(f checkoutServiceFixtures) {
				f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
				f.coupons.On("FindByCode", mock.Anything, "NOPE").Return(nil, repository.ErrCouponNotFound)
			},
			input:   &usecase.QuoteInput{Items: []entity.CartItem{{ID: "prod-1", Quantity: 1}}, CouponCode: "nope"},
			wantErr: domainerrors.ErrCouponNotFound,
		},
		{
			name: "expired coupon",
			setup: func(f checkoutServiceFixtures) {
				c := percentCoupon("OLD", 10)
				c.ExpiresAt = &expired
				f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
				f.coupons.On("FindByCode", mock.Anything, "OLD").Return(c, nil)
			},
			input:   &usecase.QuoteInput{Items: []entity.CartItem{{ID: "prod-1", Quantity: 1}}, CouponCode: "old"},
			wantErr: domainerrors.ErrCouponExpired,
		},
		{
			name: "minimum not met",
			setup: func(f checkoutServiceFixtures) {
				c := percentCoupon("FIRST20", 20)
				c.MinOrderAmount = 1000
				f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
				f.coupons.On("FindByCode", mock.Anything, "FIRST20").Return(c, nil)
			},
			input:   &usecase.QuoteInput{Items: []entity.CartItem{{ID: "prod-1", Quantity: 1}}, CouponCode: "FIRST20"},
			wantErr: domainerrors.ErrCouponMinimumNotMet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestCheckoutService(t)
			tt.setup(f)

			out, err := f.service.Quote(context.Background(), tt.input)

			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckoutService_CreatePaymentOrder_RejectsOversizedQuantity(t *testing.T) {
	f := createTestCheckoutService(t)

	out, err := f.service.CreatePaymentOrder(context.Background(), &usecase.PaymentOrderInput{
		QuoteInput: usecase.QuoteInput{Items: []entity.CartItem{
			{ID: "prod-1", Quantity: 1},
			{ID: "prod-2", Price: 1999, Quantity: 1384197904480456600},
		}},
	})

	assert.Nil(t, out)
	validationErr, ok := errors.AsType[*domainerrors.ValidationError](err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"items[1].quantity": "between 1 and 99"}, validationErr.Fields)
	f.products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_CreatePaymentOrder(t *testing.T) {
	f := createTestCheckoutService(t)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
	f.coupons.On("FindByCode", mock.Anything, "LUMERA10").Return(percentCoupon("LUMERA10", 10), nil)
	f.gateway.On("CreateOrder", mock.Anything, int64(86400), mock.MatchedBy(func(receipt string) bool {
		return len(receipt) == len("rcpt_1747218600000_abc123")
	}), map[string]string{
		"email":   "asha@example.com",
		"phone":   "9876543210",
		"coupon":  "LUMERA10",
		"cart_id": "cart-1",
	}).Return(&service.GatewayOrder{ID: "order_Q1", Amount: 86400, Currency: "INR", KeyID: "rzp_test"}, nil)
	f.carts.On("Get", mock.Anything, "cart-1").Return(&entity.Cart{
		ID:    "cart-1",
		Items: []entity.CartItem{{ID: "prod-1", Quantity: 1}},
	}, nil)

	out, err := f.service.CreatePaymentOrder(context.Background(), &usecase.PaymentOrderInput{
		QuoteInput: usecase.QuoteInput{CartID: "cart-1", CouponCode: "LUMERA10"},
		Address:    entity.ShippingAddress{Email: "Asha@example.com", Phone: "9876543210"},
	})

	require.NoError(t, err)
	assert.Equal(t, "order_Q1", out.RazorpayOrderID)
	assert.Equal(t, int64(86400), out.Amount)
	assert.Equal(t, "INR", out.Currency)
	assert.Equal(t, "rzp_test", out.KeyID)
	assert.Regexp(t, `^rcpt_1747218600000_[0-9a-z]{6}$`, out.Receipt)
	assert.Equal(t, int64(864), out.Breakdown.Total)
}

func TestCheckoutService_CreatePaymentOrder_GatewayDown(t *testing.T) {
	f := createTestCheckoutService(t)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
	f.gateway.On("CreateOrder", mock.Anything, int64(94900), mock.Anything, mock.Anything).
		Return(nil, errors.New("circuit breaker is open"))

	out, err := f.service.CreatePaymentOrder(context.Background(), &usecase.PaymentOrderInput{
		QuoteInput: usecase.QuoteInput{Items: []entity.CartItem{{ID: "prod-1", Quantity: 1}}},
	})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrPaymentGatewayUnavailable)
}
