package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "lumera/internal/delivery/context"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/pricing"
	"lumera/internal/domain/repository"
	"lumera/internal/domain/service"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultOrderPageSize = 10
	maxOrderPageSize     = 100
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	gateway   service.PaymentGateway
	qrCodes   service.QRCodeService
	publisher service.EventPublisher
	mailer    service.Mailer
	now       func() time.Time
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo     repository.OrderRepository
	UserRepo      repository.UserRepository
	Gateway       service.PaymentGateway
	QRCodeService service.QRCodeService
	Publisher     service.EventPublisher
	Mailer        service.Mailer
	Logger        *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orders:    params.OrderRepo,
		users:     params.UserRepo,
		gateway:   params.Gateway,
		qrCodes:   params.QRCodeService,
		publisher: params.Publisher,
		mailer:    params.Mailer,
		now:       time.Now,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *orderService) List(ctx context.Context, input *usecase.OrderListInput) (*entity.Page[*entity.Order], error) {
	filter := entity.OrderFilter{
		Email: entity.NormalizeEmail(input.Email),
		Page:  max(input.Page, 1),
		Limit: input.Limit,
	}
	if filter.Limit < 1 {
		filter.Limit = defaultOrderPageSize
	}
	filter.Limit = min(filter.Limit, maxOrderPageSize)

	if input.Status != "" {
		status := entity.OrderStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrInvalidOrderStatus.WithDetails(input.Status)
		}
		filter.Status = status
	}

	orders, total, err := srv.orders.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return entity.NewPage(orders, total, filter.Page, filter.Limit), nil
}

// Get hides orders of other customers behind ErrOrderNotFound.
func (srv *orderService) Get(ctx context.Context, orderNumber string, requester usecase.Requester) (*entity.Order, error) {
	order, err := srv.find(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if requester.IsAdmin {
		return order, nil
	}

	if order.UserID != nil && *order.UserID == requester.UserID {
		return order, nil
	}

	user, err := srv.users.FindByID(ctx, requester.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if order.Customer.Email == "" || order.Customer.Email != user.Email {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

// UpdateStatus records a fulfillment transition, then notifies the customer and subscribers.
func (srv *orderService) UpdateStatus(ctx context.Context, orderNumber string, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	status := entity.OrderStatus(input.Status)
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidOrderStatus.WithDetails(input.Status)
	}

	carrier := entity.Carrier(strings.ToLower(strings.TrimSpace(input.Carrier)))
	if carrier != "" && !carrier.IsValid() {
		return nil, domainerrors.NewValidationError(map[string]string{"carrier": "oneof delhivery bluedart dtdc shiprocket indiapost ecom"})
	}

	order, err := srv.find(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	previous := order.TransitionTo(status, strings.TrimSpace(input.Note), srv.now())
	if input.TrackingNumber != "" {
		order.Fulfillment.TrackingNumber = strings.TrimSpace(input.TrackingNumber)
	}
	if carrier != "" {
		order.Fulfillment.Carrier = carrier
	}

	if err := srv.orders.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	srv.log(ctx).Info("Order status changed",
		slog.String("order_number", order.OrderNumber),
		slog.String("from", string(previous)),
		slog.String("to", string(status)),
	)

	srv.publish(ctx, service.EventOrderStatusChanged, order, previous)

	if order.Customer.Email != "" {
		if err := srv.mailer.Send(ctx, orderStatusEmail(order)); err != nil {
			srv.log(ctx).Warn("Failed to send order status email", slog.Any("error", err), slog.String("order_number", order.OrderNumber))
		}
	}

	return order, nil
}

// Refund refunds through the gateway and records the refunded amount.
func (srv *orderService) Refund(ctx context.Context, orderNumber string, amount *int64) (*entity.Order, error) {
	order, err := srv.find(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	refundable := order.RefundableAmount()
	if refundable <= 0 || order.Payment.TransactionID == "" {
		return nil, domainerrors.ErrRefundNotAllowed.WithDetails("nothing left to refund")
	}

	refund := refundable
	if amount != nil {
		refund = *amount
	}
	if refund <= 0 || refund > refundable {
		return nil, domainerrors.ErrRefundNotAllowed.WithDetails("refund amount must be between 1 and the remaining balance")
	}

	result, err := srv.gateway.Refund(ctx, order.Payment.TransactionID, pricing.ToPaise(refund))
	if err != nil {
		srv.log(ctx).Error("Gateway refund failed", slog.Any("error", err), slog.String("order_number", order.OrderNumber))

		return nil, errors.Wrap(domainerrors.ErrPaymentGatewayUnavailable, "failed to refund payment")
	}

	now := srv.now()
	order.Payment.RefundID = result.ID
	order.Payment.RefundedAmount += refund
	order.Payment.Status = entity.PaymentStatusPartialRefund
	if order.Payment.RefundedAmount >= order.Pricing.Total {
		order.Payment.Status = entity.PaymentStatusRefunded
	}
	order.UpdatedAt = now

	if err := srv.orders.Update(ctx, order); err != nil {
		// The money already moved; the record must be fixed by hand.
		srv.log(ctx).Error("Failed to record refund",
			slog.Any("error", err),
			slog.String("order_number", order.OrderNumber),
			slog.String("refund_id", result.ID),
		)

		return nil, errors.Wrap(err, "failed to record refund")
	}

	srv.log(ctx).Info("Order refunded",
		slog.String("order_number", order.OrderNumber),
		slog.Int64("amount", refund),
		slog.String("payment_status", string(order.Payment.Status)),
	)

	srv.publish(ctx, service.EventOrderRefunded, order, order.Status)

	return order, nil
}

func (srv *orderService) QRCode(ctx context.Context, orderNumber string) ([]byte, error) {
	order, err := srv.find(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrCodes.GenerateOrderQR(order.OrderNumber)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render order QR code")
	}

	return png, nil
}

// MyOrders lists the caller's orders, including guest orders placed with the same email.
func (srv *orderService) MyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	user, err := srv.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	orders, err := srv.orders.ListByCustomer(ctx, user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer orders")
	}
	if orders == nil {
		orders = []*entity.Order{}
	}

	return orders, nil
}

func (srv *orderService) find(ctx context.Context, orderNumber string) (*entity.Order, error) {
	order, err := srv.orders.FindByNumber(ctx, strings.ToUpper(strings.TrimSpace(orderNumber)))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

func (srv *orderService) publish(ctx context.Context, eventType string, order *entity.Order, previous entity.OrderStatus) {
	event := newOrderEvent(ctx, eventType, order, previous)
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event",
			slog.Any("error", err),
			slog.String("event_type", eventType),
			slog.String("order_number", order.OrderNumber),
		)
	}
}
