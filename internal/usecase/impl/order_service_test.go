package impl

import (
	"context"
	"strings"
	"testing"

	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/domain/service"
	"lumera/internal/errors"
	mockRepo "lumera/internal/mocks/repository"
	mockSvc "lumera/internal/mocks/service"
	"lumera/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	orders    *mockRepo.MockOrderRepository
	users     *mockRepo.MockUserRepository
	gateway   *mockSvc.MockPaymentGateway
	qrCodes   *mockSvc.MockQRCodeService
	publisher *mockSvc.MockEventPublisher
	mailer    *mockSvc.MockMailer
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	f := orderServiceFixtures{
		orders:    mockRepo.NewMockOrderRepository(t),
		users:     mockRepo.NewMockUserRepository(t),
		gateway:   mockSvc.NewMockPaymentGateway(t),
		qrCodes:   mockSvc.NewMockQRCodeService(t),
		publisher: mockSvc.NewMockEventPublisher(t),
		mailer:    mockSvc.NewMockMailer(t),
	}

	svc := NewOrderService(OrderServiceParams{
		OrderRepo:     f.orders,
		UserRepo:      f.users,
		Gateway:       f.gateway,
		QRCodeService: f.qrCodes,
		Publisher:     f.publisher,
		Mailer:        f.mailer,
		Logger:        newDiscardLogger(),
	})
	svc.(*orderService).now = fixedClock
	f.service = svc

	return f
}

func paidOrder() *entity.Order {
	return &entity.Order{
		ID:          uuid.New(),
		OrderNumber: "LUM2505ABC123",
		Customer:    entity.OrderCustomer{Email: "asha@example.com", FirstName: "Asha"},
		Pricing:     entity.OrderPricing{Total: 864},
		Payment: entity.OrderPayment{
			Status:        entity.PaymentStatusCompleted,
			TransactionID: "pay_Q1",
		},
		Status: entity.OrderStatusConfirmed,
	}
}

func TestOrderService_List_ClampsPaging(t *testing.T) {
	f := createTestOrderService(t)
	f.orders.On("List", mock.Anything, entity.OrderFilter{
		Status: entity.OrderStatusShipped,
		Email:  "asha@example.com",
		Page:   1,
		Limit:  100,
	}).Return([]*entity.Order{paidOrder()}, int64(1), nil)

	page, err := f.service.List(context.Background(), &usecase.OrderListInput{
		Status: "shipped",
		Email:  " Asha@Example.com",
		Page:   0,
		Limit:  500,
	})

	require.NoError(t, err)
	assert.Len(t, page.Docs, 1)
	assert.Equal(t, int64(1), page.TotalDocs)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNextPage)
}

func TestOrderService_List_InvalidStatus(t *testing.T) {
	f := createTestOrderService(t)

	_, err := f.service.List(context.Background(), &usecase.OrderListInput{Status: "lost"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)
}

func TestOrderService_Get_Access(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	f := createTestOrderService(t)
	order := paidOrder()
	order.UserID = &owner
	f.orders.On("FindByNumber", mock.Anything, "LUM2505ABC123").Return(order, nil)
	f.users.On("FindByID", mock.Anything, stranger).Return(&entity.User{ID: stranger, Email: "someone@example.com"}, nil)

	got, err := f.service.Get(context.Background(), "lum2505abc123", usecase.Requester{UserID: owner})
	require.NoError(t, err)
	assert.Equal(t, order, got)

	got, err = f.service.Get(context.Background(), "LUM2505ABC123", usecase.Requester{IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, order, got)

	_, err = f.service.Get(context.Background(), "LUM2505ABC123", usecase.Requester{UserID: stranger})
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_Get_GuestOrderMatchedByEmail(t *testing.T) {
	userID := uuid.New()
	f := createTestOrderService(t)
	f.orders.On("FindByNumber", mock.Anything, "LUM2505ABC123").Return(paidOrder(), nil)
	f.users.On("FindByID", mock.Anything, userID).Return(&entity.User{ID: userID, Email: "asha@example.com"}, nil)

	got, err := f.service.Get(context.Background(), "LUM2505ABC123", usecase.Requester{UserID: userID})

	require.NoError(t, err)
	assert.Equal(t, "LUM2505ABC123", got.OrderNumber)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := createTestOrderService(t)
	order := paidOrder()
	f.orders.On("FindByNumber", mock.Anything, "LUM2505ABC123").Return(order, nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(event *service.OrderEvent) bool {
		return event.Type == service.EventOrderStatusChanged &&
			event.Status == "shipped" &&
			event.PreviousStatus == "confirmed"
	})).Return(nil)
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(email *service.Email) bool {
		return email.Subject == "Order Update - LUM2505ABC123" &&
			strings.Contains(email.Body, "is now on its way") &&
			strings.Contains(email.Body, "Tracking Number: DL123")
	})).Return(errors.New("smtp down"))

	got, err := f.service.UpdateStatus(context.Background(), "LUM2505ABC123", &usecase.UpdateOrderStatusInput{
		Status:         "shipped",
		Note:           "Handed to courier",
		TrackingNumber: "DL123",
		Carrier:        "Delhivery",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, got.Status)
	assert.Equal(t, entity.CarrierDelhivery, got.Fulfillment.Carrier)
	require.NotNil(t, got.Fulfillment.ShippedAt)
	assert.Equal(t, testNow, *got.Fulfillment.ShippedAt)
	require.Len(t, got.StatusHistory, 1)
	assert.Equal(t, "Handed to courier", got.StatusHistory[0].Note)
}

func TestOrderService_UpdateStatus_Invalid(t *testing.T) {
	f := createTestOrderService(t)

	_, err := f.service.UpdateStatus(context.Background(), "LUM2505ABC123", &usecase.UpdateOrderStatusInput{Status: "teleported"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)

	_, err = f.service.UpdateStatus(context.Background(), "LUM2505ABC123", &usecase.UpdateOrderStatusInput{Status: "shipped", Carrier: "pigeon"})
	var validationErr *domainerrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	f.orders.On("FindByNumber", mock.Anything, "LUM0000000000").Return(nil, repository.ErrOrderNotFound)
	_, err = f.service.UpdateStatus(context.Background(), "LUM0000000000", &usecase.UpdateOrderStatusInput{Status: "shipped"})
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_Refund_Partial(t *testing.T) {
	f := createTestOrderService(t)
	order := paidOrder()
	amount := int64(300)

	f.orders.On("FindByNumber", mock.Anything, "LUM2505ABC123").Return(order, nil)
	f.gateway.On("Refund", mock.Anything, "pay_Q1", int64(30000)).Return(&service.GatewayRefund{ID: "rfnd_1", Amount: 30000, Status: "processed"}, nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(event *service.OrderEvent) bool {
		return event.Type == service.EventOrderRefunded && event.PaymentStatus == "partial_refund"
	})).Return(nil)

	got, err := f.service.Refund(context.Background(), "LUM2505ABC123", &amount)

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartialRefund, got.Payment.Status)
	assert.Equal(t, int64(300), got.Payment.RefundedAmount)
	assert.Equal(t, "rfnd_1", got.Payment.RefundID)
	assert.Equal(t, int64(564), got.RefundableAmount())
}

func TestOrderService_Refund_RemainingBalance(t *testing.T) {
	f := createTestOrderService(t)
	order := paidOrder()
	order.Payment.Status = entity.PaymentStatusPartialRefund
	order.Payment.RefundedAmount = 300

	f.orders.On("FindByNumber", mock.Anything, "LUM2505ABC123").Return(order, nil)
	f.gateway.On("Refund", mock.Anything, "pay_Q1", int64(56400)).Return(&service.GatewayRefund{ID: "rfnd_2"}, nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	got, err := f.service.Refund(context.Background(), "LUM2505ABC123", nil)

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, got.Payment.Status)
	assert.Zero(t, got.RefundableAmount())
}

func TestOrderService_Refund_NotAllowed(t *testing.T) {
	f := createTestOrderService(t)
	refunded := paidOrder()
	refunded.Payment.Status = entity.PaymentStatusRefunded
	f.orders.On("FindByNumber", mock.Anything, "LUM2505REFUND").Return(refunded, nil)
	f.orders.On("FindByNumber", mock.Anything, "LUM2505ABC123").Return(paidOrder(), nil)

	_, err := f.service.Refund(context.Background(), "LUM2505REFUND", nil)
	assert.ErrorIs(t, err, domainerrors.ErrRefundNotAllowed)

	tooMuch := int64(5000)
	_, err = f.service.Refund(context.Background(), "LUM2505ABC123", &tooMuch)
	assert.ErrorIs(t, err, domainerrors.ErrRefundNotAllowed)
}

func TestOrderService_Refund_GatewayFailure(t *testing.T) {
	f := createTestOrderService(t)
	f.orders.On("FindByNumber", mock.Anything, "LUM2505ABC123").Return(paidOrder(), nil)
	f.gateway.On("Refund", mock.Anything, "pay_Q1", int64(86400)).Return(nil, errors.New("breaker open"))

	_, err := f.service.Refund(context.Background(), "LUM2505ABC123", nil)

	assert.ErrorIs(t, err, domainerrors.ErrPaymentGatewayUnavailable)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_QRCode(t *testing.T) {
	f := createTestOrderService(t)
	f.orders.On("FindByNumber", mock.Anything, "LUM2505ABC123").Return(paidOrder(), nil)
	f.qrCodes.On("GenerateOrderQR", "LUM2505ABC123").Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := f.service.QRCode(context.Background(), "LUM2505ABC123")

	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png)
}

func TestOrderService_MyOrders(t *testing.T) {
	userID := uuid.New()
	f := createTestOrderService(t)
	f.users.On("FindByID", mock.Anything, userID).Return(&entity.User{ID: userID, Email: "asha@example.com"}, nil)
	f.orders.On("ListByCustomer", mock.Anything, userID, "asha@example.com").Return(nil, nil)

	orders, err := f.service.MyOrders(context.Background(), userID)

	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
