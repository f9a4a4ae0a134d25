package impl

import (
	"context"
	"strings"
	"testing"

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

// paymentServiceFixtures holds all test dependencies for payment service tests.
type paymentServiceFixtures struct {
	service   usecase.PaymentUsecase
	txManager *mockRepo.MockTransactionManager
	orders    *mockRepo.MockOrderRepository
	carts     *mockRepo.MockCartRepository
	products  *mockRepo.MockProductRepository
	coupons   *mockRepo.MockCouponRepository
	gateway   *mockSvc.MockPaymentGateway
	mailer    *mockSvc.MockMailer
	publisher *mockSvc.MockEventPublisher
	qrCodes   *mockSvc.MockQRCodeService
}

func createTestPaymentService(t *testing.T) paymentServiceFixtures {
	orders := mockRepo.NewMockOrderRepository(t)
	coupons := mockRepo.NewMockCouponRepository(t)
	txManager := mockRepo.NewMockTransactionManager(&mockRepo.MockRepositoryFactory{
		OrderRepo:  orders,
		CouponRepo: coupons,
	})

	f := paymentServiceFixtures{
		txManager: txManager,
		orders:    orders,
		carts:     mockRepo.NewMockCartRepository(t),
		products:  mockRepo.NewMockProductRepository(t),
		coupons:   coupons,
		gateway:   mockSvc.NewMockPaymentGateway(t),
		mailer:    mockSvc.NewMockMailer(t),
		publisher: mockSvc.NewMockEventPublisher(t),
		qrCodes:   mockSvc.NewMockQRCodeService(t),
	}

	svc := NewPaymentService(PaymentServiceParams{
		TxManager:     txManager,
		OrderRepo:     orders,
		CartRepo:      f.carts,
		ProductRepo:   f.products,
		CouponRepo:    coupons,
		Gateway:       f.gateway,
		Mailer:        f.mailer,
		Publisher:     f.publisher,
		QRCodeService: f.qrCodes,
		Calculator:    pricing.DefaultCalculator(),
		Logger:        newDiscardLogger(),
	})
	impl := svc.(*paymentService)
	impl.now = fixedClock
	impl.pricer.now = fixedClock
	f.service = impl

	return f
}

func verifyInput(data *usecase.OrderData) *usecase.VerifyPaymentInput {
	return &usecase.VerifyPaymentInput{
		RazorpayOrderID:   "order_Q1",
		RazorpayPaymentID: "pay_Q1",
		RazorpaySignature: "sig",
		OrderData:         data,
	}
}

func checkoutOrderData() *usecase.OrderData {
	return &usecase.OrderData{
		Email:     "Asha@Example.com",
		Phone:     "9876543210",
		FirstName: "Asha",
		LastName:  "Rao",
		ShippingAddress: usecase.OrderDataAddress{
			AddressLine1: "12 MG Road",
			City:         "Bengaluru",
			State:        "Karnataka",
			Pincode:      "560001",
		},
		Items:          []entity.CartItem{{ID: "prod-1", Name: "Amber Noir", Price: 850, Quantity: 1}},
		Subtotal:       850,
		ShippingCost:   99,
		CouponCode:     "lumera10",
		CouponDiscount: 85,
		Total:          864,
		CartID:         "cart-1",
	}
}

// expectVerifiedSignature accepts the signature and reports paidRupees captured for order_Q1.
func (f paymentServiceFixtures) expectVerifiedSignature(paidRupees int64) {
	f.gateway.On("VerifySignature", "order_Q1", "pay_Q1", "sig").Return(true)
	f.gateway.On("FetchPayment", mock.Anything, "pay_Q1").Return(&service.GatewayPayment{
		ID:       "pay_Q1",
		OrderID:  "order_Q1",
		Status:   "captured",
		Amount:   pricing.ToPaise(paidRupees),
		Currency: "INR",
	}, nil)
}

func (f paymentServiceFixtures) expectNotifications() {
	f.qrCodes.On("GenerateOrderQR", mock.AnythingOfType("string")).Return([]byte("png"), nil)
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(email *service.Email) bool {
		return email.To == "asha@example.com" &&
			strings.HasPrefix(email.Subject, "Order Confirmed - LUM2505") &&
			len(email.Attachments) == 1
	})).Return(nil)
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(event *service.OrderEvent) bool {
		return event.Type == service.EventOrderPlaced
	})).Return(nil)
}

func TestPaymentService_VerifyPayment_MissingParams(t *testing.T) {
	f := createTestPaymentService(t)

	out, err := f.service.VerifyPayment(context.Background(), &usecase.VerifyPaymentInput{RazorpayOrderID: "order_Q1"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrMissingPaymentParams)
}

func TestPaymentService_VerifyPayment_InvalidSignature(t *testing.T) {
	f := createTestPaymentService(t)
	f.gateway.On("VerifySignature", "order_Q1", "pay_Q1", "sig").Return(false)

	out, err := f.service.VerifyPayment(context.Background(), verifyInput(checkoutOrderData()))

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPaymentSignature)
	assert.Zero(t, f.txManager.Calls)
}

func TestPaymentService_VerifyPayment_Success(t *testing.T) {
	f := createTestPaymentService(t)
	ctx := context.Background()
	coupon := percentCoupon("LUMERA10", 10)

	f.expectVerifiedSignature(864)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
	f.coupons.On("FindByCode", mock.Anything, "LUMERA10").Return(coupon, nil)

	var saved *entity.Order
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Order) }).
		Return(nil)
	f.coupons.On("IncrementUsage", mock.Anything, coupon.ID).Return(nil)
	f.expectNotifications()
	f.carts.On("Delete", mock.Anything, "cart-1").Return(nil)

	out, err := f.service.VerifyPayment(ctx, verifyInput(checkoutOrderData()))

	require.NoError(t, err)
	assert.True(t, out.Persisted)
	assert.Equal(t, "captured", out.PaymentStatus)
	assert.Equal(t, "pay_Q1", out.PaymentID)
	assert.Regexp(t, entity.OrderNumberPattern, out.OrderNumber)

	require.NotNil(t, saved)
	assert.Equal(t, out.OrderNumber, saved.OrderNumber)
	assert.Equal(t, "asha@example.com", saved.Customer.Email)
	assert.Equal(t, "KA", saved.ShippingAddress.State)
	assert.Equal(t, entity.OrderStatusConfirmed, saved.Status)
	assert.Equal(t, entity.PaymentStatusCompleted, saved.Payment.Status)
	assert.Equal(t, int64(850), saved.Pricing.Subtotal)
	assert.Equal(t, int64(99), saved.Pricing.Shipping.Cost)
	assert.Equal(t, entity.OrderDiscount{Code: "LUMERA10", Amount: 85}, saved.Pricing.Discount)
	assert.Equal(t, int64(864), saved.Pricing.Total)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "prod-1", saved.Items[0].ProductID)
}

func TestPaymentService_VerifyPayment_ServerPricesOverrideClient(t *testing.T) {
	f := createTestPaymentService(t)
	data := checkoutOrderData()
	data.CouponCode = ""
	data.CouponDiscount = 0
	data.Items[0].Price = 1
	data.Total = 100

	f.expectVerifiedSignature(949)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)

	var saved *entity.Order
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Order) }).
		Return(nil)
	f.expectNotifications()
	f.carts.On("Delete", mock.Anything, "cart-1").Return(nil)

	_, err := f.service.VerifyPayment(context.Background(), verifyInput(data))

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, int64(850), saved.Items[0].UnitPrice)
	assert.Equal(t, int64(949), saved.Pricing.Total)
}

func TestPaymentService_VerifyPayment_DatabaseFailureStillSucceeds(t *testing.T) {
	f := createTestPaymentService(t)

	f.expectVerifiedSignature(864)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
	f.coupons.On("FindByCode", mock.Anything, "LUMERA10").Return(percentCoupon("LUMERA10", 10), nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).Return(errors.New("connection refused"))
	f.expectNotifications()

	out, err := f.service.VerifyPayment(context.Background(), verifyInput(checkoutOrderData()))

	require.NoError(t, err)
	assert.False(t, out.Persisted)
	assert.Regexp(t, entity.OrderNumberPattern, out.OrderNumber)
	f.carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPaymentService_VerifyPayment_EmailFailureStillSucceeds(t *testing.T) {
	f := createTestPaymentService(t)
	data := checkoutOrderData()
	data.CouponCode = ""
	data.CartID = ""

	f.expectVerifiedSignature(949)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).Return(nil)
	f.qrCodes.On("GenerateOrderQR", mock.AnythingOfType("string")).Return(nil, errors.New("encoder failed"))
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(email *service.Email) bool {
		return len(email.Attachments) == 0
	})).Return(errors.New("smtp timeout"))
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	out, err := f.service.VerifyPayment(context.Background(), verifyInput(data))

	require.NoError(t, err)
	assert.True(t, out.Persisted)
}

func TestPaymentService_VerifyPayment_Replay(t *testing.T) {
	f := createTestPaymentService(t)

	f.expectVerifiedSignature(864)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(&entity.Order{OrderNumber: "LUM2505ABC123"}, nil)

	out, err := f.service.VerifyPayment(context.Background(), verifyInput(checkoutOrderData()))

	require.NoError(t, err)
	assert.Equal(t, "LUM2505ABC123", out.OrderNumber)
	assert.True(t, out.Persisted)
	assert.Zero(t, f.txManager.Calls)
}

func TestPaymentService_VerifyPayment_ConcurrentDuplicate(t *testing.T) {
	f := createTestPaymentService(t)
	data := checkoutOrderData()
	data.CouponCode = ""

	f.expectVerifiedSignature(949)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound).Once()
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(&entity.Order{OrderNumber: "LUM2505ZZZ999"}, nil).Once()
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).Return(repository.ErrOrderExists)

	out, err := f.service.VerifyPayment(context.Background(), verifyInput(data))

	require.NoError(t, err)
	assert.Equal(t, "LUM2505ZZZ999", out.OrderNumber)
	assert.True(t, out.Persisted)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestPaymentService_VerifyPayment_OrderNumberCollisionRetries(t *testing.T) {
	f := createTestPaymentService(t)
	data := checkoutOrderData()
	data.CouponCode = ""

	f.expectVerifiedSignature(949)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)

	var numbers []string
	record := func(args mock.Arguments) { numbers = append(numbers, args.Get(1).(*entity.Order).OrderNumber) }
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(record).
		Return(errors.Wrap(repository.ErrOrderNumberTaken, "constraint orders_order_number_key")).Once()
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(record).
		Return(nil).Once()
	f.expectNotifications()
	f.carts.On("Delete", mock.Anything, "cart-1").Return(nil)

	out, err := f.service.VerifyPayment(context.Background(), verifyInput(data))

	require.NoError(t, err)
	assert.True(t, out.Persisted)
	require.Len(t, numbers, 2)
	assert.NotEqual(t, numbers[0], numbers[1])
	assert.Equal(t, numbers[1], out.OrderNumber)
	assert.Equal(t, 2, f.txManager.Calls)
}

func TestPaymentService_VerifyPayment_StaleCouponHoldsShortPayment(t *testing.T) {
	f := createTestPaymentService(t)

	f.expectVerifiedSignature(864)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)
	f.coupons.On("FindByCode", mock.Anything, "LUMERA10").Return(nil, repository.ErrCouponNotFound)

	var saved *entity.Order
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Order) }).
		Return(nil)
	f.expectNotifications()
	f.carts.On("Delete", mock.Anything, "cart-1").Return(nil)

	_, err := f.service.VerifyPayment(context.Background(), verifyInput(checkoutOrderData()))

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Empty(t, saved.Pricing.Discount.Code)
	assert.Equal(t, int64(949), saved.Pricing.Total)
	assert.Equal(t, entity.OrderStatusPending, saved.Status)
	assert.Equal(t, entity.PaymentStatusPending, saved.Payment.Status)
}

func TestPaymentService_VerifyPayment_ExtraItemsHeldForReview(t *testing.T) {
	f := createTestPaymentService(t)
	data := checkoutOrderData()
	data.CouponCode = ""
	data.Items[0].Quantity = 10

	// One candle was paid for; ten are claimed.
	f.expectVerifiedSignature(949)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)

	var saved *entity.Order
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Order) }).
		Return(nil)
	f.expectNotifications()
	f.carts.On("Delete", mock.Anything, "cart-1").Return(nil)

	out, err := f.service.VerifyPayment(context.Background(), verifyInput(data))

	require.NoError(t, err)
	assert.True(t, out.Persisted)
	require.NotNil(t, saved)
	assert.Equal(t, int64(8500), saved.Pricing.Total)
	assert.Equal(t, entity.OrderStatusPending, saved.Status)
	assert.Equal(t, entity.PaymentStatusPending, saved.Payment.Status)
	require.Len(t, saved.StatusHistory, 1)
	assert.Equal(t, entity.OrderStatusPending, saved.StatusHistory[0].Status)
	assert.Equal(t, "Held for review: gateway captured 94900 paise, order total is 850000 paise", saved.StatusHistory[0].Note)
	assert.Zero(t, saved.RefundableAmount())
}

func TestPaymentService_VerifyPayment_PaymentForAnotherOrderHeld(t *testing.T) {
	f := createTestPaymentService(t)
	data := checkoutOrderData()
	data.CouponCode = ""
	data.CartID = ""

	f.gateway.On("VerifySignature", "order_Q1", "pay_Q1", "sig").Return(true)
	f.gateway.On("FetchPayment", mock.Anything, "pay_Q1").Return(&service.GatewayPayment{
		ID: "pay_Q1", OrderID: "order_OTHER", Status: "captured", Amount: 94900,
	}, nil)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)

	var saved *entity.Order
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Order) }).
		Return(nil)
	f.expectNotifications()

	_, err := f.service.VerifyPayment(context.Background(), verifyInput(data))

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, entity.PaymentStatusPending, saved.Payment.Status)
}

func TestPaymentService_VerifyPayment_GatewayUnavailable(t *testing.T) {
	f := createTestPaymentService(t)
	data := checkoutOrderData()
	data.CouponCode = ""
	data.CartID = ""

	f.gateway.On("VerifySignature", "order_Q1", "pay_Q1", "sig").Return(true)
	f.gateway.On("FetchPayment", mock.Anything, "pay_Q1").Return(nil, errors.New("circuit breaker is open"))
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(activeProduct("prod-1", 850), nil)

	var saved *entity.Order
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Order) }).
		Return(nil)
	f.expectNotifications()

	out, err := f.service.VerifyPayment(context.Background(), verifyInput(data))

	require.NoError(t, err)
	assert.Equal(t, "captured", out.PaymentStatus)
	require.NotNil(t, saved)
	assert.Equal(t, entity.PaymentStatusCompleted, saved.Payment.Status)
	assert.Equal(t, "Payment verified; paid amount not confirmed by the gateway", saved.StatusHistory[0].Note)
}

func TestPaymentService_VerifyPayment_UnpriceableRecordsCheckoutTotals(t *testing.T) {
	f := createTestPaymentService(t)
	data := checkoutOrderData()
	data.CouponCode = ""

	f.expectVerifiedSignature(864)
	f.orders.On("FindByPaymentID", mock.Anything, "pay_Q1").Return(nil, repository.ErrOrderNotFound)
	f.products.On("FindByID", mock.Anything, "prod-1").Return(nil, repository.ErrProductNotFound)

	var saved *entity.Order
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Order) }).
		Return(nil)
	f.expectNotifications()
	f.carts.On("Delete", mock.Anything, "cart-1").Return(nil)

	_, err := f.service.VerifyPayment(context.Background(), verifyInput(data))

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, int64(864), saved.Pricing.Total)
	assert.Equal(t, "Payment verified; totals as reported at checkout", saved.StatusHistory[0].Note)
}
