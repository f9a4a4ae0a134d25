package impl

import (
	"context"
	"fmt"
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
	// defaultPaymentStatus is reported when the gateway cannot be asked.
	defaultPaymentStatus = "captured"

	// orderNumberAttempts bounds retries after an order number collision.
	orderNumberAttempts = 3
)

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	txManager repository.TransactionManager
	orders    repository.OrderRepository
	carts     repository.CartRepository
	gateway   service.PaymentGateway
	mailer    service.Mailer
	publisher service.EventPublisher
	qrCodes   service.QRCodeService
	pricer    *orderPricer
	now       func() time.Time
	logger    *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	OrderRepo     repository.OrderRepository
	CartRepo      repository.CartRepository
	ProductRepo   repository.ProductRepository
	CouponRepo    repository.CouponRepository
	Gateway       service.PaymentGateway
	Mailer        service.Mailer
	Publisher     service.EventPublisher
	QRCodeService service.QRCodeService
	Calculator    *pricing.Calculator
	Logger        *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		txManager: params.TxManager,
		orders:    params.OrderRepo,
		carts:     params.CartRepo,
		gateway:   params.Gateway,
		mailer:    params.Mailer,
		publisher: params.Publisher,
		qrCodes:   params.QRCodeService,
		pricer: &orderPricer{
			calc:     params.Calculator,
			products: params.ProductRepo,
			coupons:  params.CouponRepo,
			now:      time.Now,
		},
		now:    time.Now,
		logger: params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// VerifyPayment authenticates the gateway callback and records the order.
func (srv *paymentService) VerifyPayment(ctx context.Context, input *usecase.VerifyPaymentInput) (*usecase.VerifyPaymentOutput, error) {
	if input == nil || input.RazorpayOrderID == "" || input.RazorpayPaymentID == "" || input.RazorpaySignature == "" {
		srv.log(ctx).Warn("Payment verification rejected: missing parameters")

		return nil, domainerrors.ErrMissingPaymentParams
	}

	logger := srv.log(ctx).With(
		slog.String("razorpay_order_id", input.RazorpayOrderID),
		slog.String("razorpay_payment_id", input.RazorpayPaymentID),
	)

	// 1. The signature is the only hard check
	if !srv.gateway.VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature) {
		logger.Warn("Payment verification rejected: signature mismatch")

		return nil, domainerrors.ErrInvalidPaymentSignature
	}

	payment := srv.fetchPayment(ctx, logger, input.RazorpayPaymentID)
	output := &usecase.VerifyPaymentOutput{
		PaymentID:     input.RazorpayPaymentID,
		PaymentStatus: defaultPaymentStatus,
	}
	if payment != nil && payment.Status != "" {
		output.PaymentStatus = payment.Status
	}

	// 2. A replayed callback returns the order already recorded
	if existing, ok := srv.findByPayment(ctx, logger, input.RazorpayPaymentID); ok {
		logger.Info("Payment already recorded", slog.String("order_number", existing.OrderNumber))
		output.OrderNumber = existing.OrderNumber
		output.Persisted = true

		return output, nil
	}

	now := srv.now()
	orderNumber, err := entity.NewOrderNumber(now)
	if err != nil {
		return nil, err
	}
	output.OrderNumber = orderNumber

	data := input.OrderData
	if data == nil {
		data = &usecase.OrderData{}
	}

	order, coupon := srv.buildOrder(ctx, logger, input, data, orderNumber, now)
	srv.reconcilePaidAmount(logger, order, payment)

	// 3. Persistence, email and event are independent and advisory
	existingNumber, persisted := srv.persist(ctx, logger, order, coupon)
	if existingNumber != "" {
		output.OrderNumber = existingNumber
		output.Persisted = true

		return output, nil
	}
	output.OrderNumber = order.OrderNumber
	output.Persisted = persisted

	srv.sendConfirmation(ctx, logger, order, data.ShippingAddress.State)
	srv.publishPlaced(ctx, logger, order)

	if persisted && data.CartID != "" {
		if err := srv.carts.Delete(ctx, data.CartID); err != nil {
			logger.Warn("Failed to clear cart after order", slog.Any("error", err), slog.String("cart_id", data.CartID))
		}
	}

	logger.Info("Payment verified",
		slog.String("order_number", output.OrderNumber),
		slog.String("payment_status", output.PaymentStatus),
		slog.Bool("persisted", output.Persisted),
	)

	return output, nil
}

// fetchPayment returns nil when the gateway cannot be reached.
func (srv *paymentService) fetchPayment(ctx context.Context, logger *slog.Logger, paymentID string) *service.GatewayPayment {
	payment, err := srv.gateway.FetchPayment(ctx, paymentID)
	if err != nil || payment == nil {
		logger.Warn("Could not fetch payment details, proceeding with verified signature", slog.Any("error", err))

		return nil
	}

	return payment
}

// reconcilePaidAmount holds the order for review when the gateway captured a
// different amount, or for a different gateway order, than the order records.
func (srv *paymentService) reconcilePaidAmount(logger *slog.Logger, order *entity.Order, payment *service.GatewayPayment) {
	if payment == nil || payment.Amount <= 0 {
		logger.Warn("Paid amount unavailable, order total not checked", slog.String("order_number", order.OrderNumber))
		order.StatusHistory[0].Note += "; paid amount not confirmed by the gateway"

		return
	}

	expected := pricing.ToPaise(order.Pricing.Total)
	sameOrder := payment.OrderID == "" || payment.OrderID == order.Payment.MerchantTransactionID
	if payment.Amount == expected && sameOrder {
		return
	}

	logger.Error("Paid amount does not match order, holding for review",
		slog.String("order_number", order.OrderNumber),
		slog.Int64("paid_paise", payment.Amount),
		slog.Int64("expected_paise", expected),
		slog.String("gateway_order_id", payment.OrderID),
	)

	order.Status = entity.OrderStatusPending
	order.Payment.Status = entity.PaymentStatusPending
	order.StatusHistory[0] = entity.OrderStatusChange{
		Status:    entity.OrderStatusPending,
		Note:      fmt.Sprintf("Held for review: gateway captured %d paise, order total is %d paise", payment.Amount, expected),
		ChangedAt: order.StatusHistory[0].ChangedAt,
	}
}

func (srv *paymentService) findByPayment(ctx context.Context, logger *slog.Logger, paymentID string) (*entity.Order, bool) {
	order, err := srv.orders.FindByPaymentID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, repository.ErrOrderNotFound) {
			logger.Warn("Failed to look up existing order", slog.Any("error", err))
		}

		return nil, false
	}

	return order, true
}

// buildOrder assembles the order record. Lines and totals are recomputed from
// the catalog; when that is impossible the amounts reported by the checkout
// page are recorded so the paid order is not lost.
func (srv *paymentService) buildOrder(
	ctx context.Context,
	logger *slog.Logger,
	input *usecase.VerifyPaymentInput,
	data *usecase.OrderData,
	orderNumber string,
	now time.Time,
) (*entity.Order, *entity.Coupon) {
	address := entity.ShippingAddress{
		AddressLine1: data.ShippingAddress.AddressLine1,
		AddressLine2: data.ShippingAddress.AddressLine2,
		City:         data.ShippingAddress.City,
		State:        data.ShippingAddress.State,
		Pincode:      data.ShippingAddress.Pincode,
	}

	paidAt := now
	order := &entity.Order{
		ID:          uuid.New(),
		OrderNumber: orderNumber,
		UserID:      input.UserID,
		Customer: entity.OrderCustomer{
			Email:     entity.NormalizeEmail(data.Email),
			Phone:     data.Phone,
			FirstName: data.FirstName,
			LastName:  data.LastName,
		},
		ShippingAddress: address.ToOrderAddress(),
		Payment: entity.OrderPayment{
			Method:                entity.PaymentMethodCard,
			Status:                entity.PaymentStatusCompleted,
			TransactionID:         input.RazorpayPaymentID,
			MerchantTransactionID: input.RazorpayOrderID,
			PaidAt:                &paidAt,
		},
		Status:        entity.OrderStatusConfirmed,
		CustomerNotes: strings.TrimSpace(data.OrderNote),
		StatusHistory: []entity.OrderStatusChange{{
			Status:    entity.OrderStatusConfirmed,
			Note:      "Payment verified",
			ChangedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	priced, err := srv.pricer.price(ctx, data.Items, data.OrderNote, data.CouponCode)
	if err != nil && data.CouponCode != "" && isCouponError(err) {
		logger.Warn("Coupon no longer applies, recording order without discount",
			slog.String("coupon_code", data.CouponCode),
			slog.Any("error", err),
		)
		priced, err = srv.pricer.price(ctx, data.Items, data.OrderNote, "")
	}

	if err != nil {
		logger.Warn("Could not price order server-side, recording checkout totals", slog.Any("error", err))
		srv.applyCheckoutTotals(order, data)

		return order, nil
	}

	if data.Total != 0 && data.Total != priced.Breakdown.Total {
		logger.Warn("Checkout total differs from server total",
			slog.Int64("checkout_total", data.Total),
			slog.Int64("server_total", priced.Breakdown.Total),
		)
	}

	order.Items = toOrderItems(priced.Items)
	order.Pricing = toOrderPricing(priced.Breakdown, srv.pricer.calc.TaxRatePercent)

	return order, priced.Coupon
}

func (srv *paymentService) applyCheckoutTotals(order *entity.Order, data *usecase.OrderData) {
	order.Items = make([]entity.OrderItem, 0, len(data.Items))
	for _, item := range data.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ProductID:   catalogProductID(item),
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			TotalPrice:  item.LineTotal(),
		})
	}

	method := entity.ShippingMethodStandard
	if data.ShippingCost == 0 {
		method = entity.ShippingMethodFree
	}

	rate := srv.pricer.calc.TaxRatePercent
	order.Pricing = entity.OrderPricing{
		Subtotal: data.Subtotal,
		Discount: entity.OrderDiscount{Code: entity.NormalizeCouponCode(data.CouponCode), Amount: data.CouponDiscount},
		Shipping: entity.OrderShipping{Method: method, Cost: data.ShippingCost},
		NoteFee:  srv.pricer.calc.NoteFee(data.OrderNote),
		Tax:      entity.OrderTax{Rate: rate, Amount: pricing.TaxIncluded(data.Total, rate)},
		Total:    data.Total,
	}

	order.StatusHistory[0].Note = "Payment verified; totals as reported at checkout"
}

// persist writes the order and the coupon redemption in one transaction. A
// colliding order number is replaced and the write retried. existingNumber is
// set when another request already recorded this payment.
func (srv *paymentService) persist(
	ctx context.Context,
	logger *slog.Logger,
	order *entity.Order,
	coupon *entity.Coupon,
) (existingNumber string, persisted bool) {
	err := srv.create(ctx, order, coupon)
	for attempt := 1; attempt < orderNumberAttempts && errors.Is(err, repository.ErrOrderNumberTaken); attempt++ {
		number, numErr := entity.NewOrderNumber(srv.now())
		if numErr != nil {
			err = numErr

			break
		}

		logger.Warn("Order number collision, retrying",
			slog.String("order_number", order.OrderNumber),
			slog.String("new_order_number", number),
		)
		order.OrderNumber = number
		err = srv.create(ctx, order, coupon)
	}

	if err == nil {
		logger.Info("Order saved to database", slog.String("order_number", order.OrderNumber))

		return "", true
	}

	if errors.Is(err, repository.ErrOrderExists) {
		if existing, ok := srv.findByPayment(ctx, logger, order.Payment.TransactionID); ok {
			logger.Info("Payment recorded by a concurrent request", slog.String("order_number", existing.OrderNumber))

			return existing.OrderNumber, true
		}
	}

	logger.Error("Failed to save order, payment needs manual reconciliation",
		slog.Any("error", err),
		slog.String("order_number", order.OrderNumber),
		slog.Int64("total", order.Pricing.Total),
	)

	return "", false
}

func (srv *paymentService) create(ctx context.Context, order *entity.Order, coupon *entity.Coupon) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewOrderRepository().Create(ctx, order); err != nil {
			return err
		}

		if coupon != nil {
			if err := repoFactory.NewCouponRepository().IncrementUsage(ctx, coupon.ID); err != nil {
				return errors.Wrap(err, "failed to record coupon usage")
			}
		}

		return nil
	})
}

func (srv *paymentService) sendConfirmation(ctx context.Context, logger *slog.Logger, order *entity.Order, stateName string) {
	if order.Customer.Email == "" {
		logger.Warn("No customer email, skipping order confirmation", slog.String("order_number", order.OrderNumber))

		return
	}

	email := orderConfirmationEmail(order, stateName)

	png, err := srv.qrCodes.GenerateOrderQR(order.OrderNumber)
	if err != nil {
		logger.Warn("Failed to render order QR code", slog.Any("error", err))
	} else {
		email.Attachments = append(email.Attachments, service.Attachment{
			Filename:    order.OrderNumber + ".png",
			ContentType: "image/png",
			Data:        png,
		})
	}

	if err := srv.mailer.Send(ctx, email); err != nil {
		logger.Error("Failed to send order confirmation email", slog.Any("error", err), slog.String("to", email.To))

		return
	}

	logger.Info("Order confirmation email sent", slog.String("to", email.To))
}

func (srv *paymentService) publishPlaced(ctx context.Context, logger *slog.Logger, order *entity.Order) {
	event := newOrderEvent(ctx, service.EventOrderPlaced, order, "")
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish order event", slog.Any("error", err), slog.String("event_type", event.Type))
	}
}

func newOrderEvent(ctx context.Context, eventType string, order *entity.Order, previous entity.OrderStatus) *service.OrderEvent {
	return &service.OrderEvent{
		RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
		Type:           eventType,
		OrderNumber:    order.OrderNumber,
		Status:         string(order.Status),
		PreviousStatus: string(previous),
		PaymentStatus:  string(order.Payment.Status),
		Email:          order.Customer.Email,
		Total:          order.Pricing.Total,
		OccurredAt:     order.UpdatedAt,
	}
}

func toOrderItems(items []entity.CartItem) []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, entity.OrderItem{
			ProductID:   catalogProductID(item),
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			TotalPrice:  item.LineTotal(),
		})
	}

	return out
}

// catalogProductID is empty for configurator builds, which have no catalog record.
func catalogProductID(item entity.CartItem) string {
	if item.Configuration != nil {
		return ""
	}

	return item.ID
}

func toOrderPricing(b pricing.Breakdown, taxRate int64) entity.OrderPricing {
	return entity.OrderPricing{
		Subtotal: b.Subtotal,
		Discount: entity.OrderDiscount{Code: b.CouponCode, Amount: b.Discount},
		Shipping: entity.OrderShipping{Method: b.ShippingMethod, Cost: b.Shipping},
		NoteFee:  b.NoteFee,
		Tax:      entity.OrderTax{Rate: taxRate, Amount: b.Tax},
		Total:    b.Total,
	}
}
