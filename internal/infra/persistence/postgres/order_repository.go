package postgres

import (
	"context"

	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultOrderPageSize = 20
	maxOrderPageSize     = 100

	orderNumberConstraint = "orders_order_number_key"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a GORM-backed order repository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := r.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return orderConflict(uniqueConstraintName(err))
		}
		if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("order record rejected")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// orderConflict tells a reused order number apart from an already recorded payment.
func orderConflict(constraint string) error {
	if constraint == orderNumberConstraint {
		return errors.Wrapf(repository.ErrOrderNumberTaken, "constraint %s", constraint)
	}

	return errors.Wrapf(repository.ErrOrderExists, "constraint %s", constraint)
}

// Update saves status, payment, fulfillment and history.
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	result := r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":          orderM.Status,
			"payment_status":  orderM.PaymentStatus,
			"paid_at":         orderM.PaidAt,
			"refund_id":       orderM.RefundID,
			"refunded_amount": orderM.RefundedAmount,
			"fulfillment":     orderM.Fulfillment,
			"status_history":  orderM.StatusHistory,
			"updated_at":      order.UpdatedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) FindByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	return r.findOne(ctx, "order_number = ?", orderNumber)
}

func (r *orderRepository) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Order, error) {
	return r.findOne(ctx, "transaction_id = ?", paymentID)
}

func (r *orderRepository) findOne(ctx context.Context, query string, arg any) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

// List returns one page of orders, newest first.
func (r *orderRepository) List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, int64, error) {
	page, limit := normalizePage(filter.Page, filter.Limit, defaultOrderPageSize, maxOrderPageSize)

	query := r.db.WithContext(ctx).Model(&model.OrderModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var orderMs []model.OrderModel
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orderMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomains(orderMs), total, nil
}

// ListByCustomer returns orders owned by userID or placed as a guest with email.
func (r *orderRepository) ListByCustomer(ctx context.Context, userID uuid.UUID, email string) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR (user_id IS NULL AND email = ?)", userID, email).
		Order("created_at DESC").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer orders")
	}

	return toOrderDomains(orderMs), nil
}

func normalizePage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}

	return page, min(limit, maxLimit)
}

func toOrderDomains(ms []model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(ms))
	for i := range ms {
		orders = append(orders, toOrderDomain(&ms[i]))
	}

	return orders
}

func toOrderDomain(m *model.OrderModel) *entity.Order {
	order := &entity.Order{
		ID:          m.ID,
		OrderNumber: m.OrderNumber,
		UserID:      m.UserID,
		Customer: entity.OrderCustomer{
			Email:     m.Email,
			Phone:     m.Phone,
			FirstName: m.FirstName,
			LastName:  m.LastName,
		},
		ShippingAddress: m.ShippingAddress.Data(),
		Items:           []entity.OrderItem(m.Items),
		Pricing:         m.Pricing.Data(),
		Payment: entity.OrderPayment{
			Method:                entity.PaymentMethod(m.PaymentMethod),
			Status:                entity.PaymentStatus(m.PaymentStatus),
			MerchantTransactionID: m.MerchantTransactionID,
			PaidAt:                m.PaidAt,
			RefundID:              m.RefundID,
			RefundedAmount:        m.RefundedAmount,
		},
		Status:        entity.OrderStatus(m.Status),
		Fulfillment:   m.Fulfillment.Data(),
		CustomerNotes: m.CustomerNotes,
		StatusHistory: []entity.OrderStatusChange(m.StatusHistory),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.TransactionID != nil {
		order.Payment.TransactionID = *m.TransactionID
	}

	return order
}

func fromOrderDomain(o *entity.Order) *model.OrderModel {
	m := &model.OrderModel{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		UserID:                o.UserID,
		Email:                 o.Customer.Email,
		Phone:                 o.Customer.Phone,
		FirstName:             o.Customer.FirstName,
		LastName:              o.Customer.LastName,
		ShippingAddress:       datatypes.NewJSONType(o.ShippingAddress),
		Items:                 datatypes.NewJSONSlice(o.Items),
		Pricing:               datatypes.NewJSONType(o.Pricing),
		PaymentMethod:         string(o.Payment.Method),
		PaymentStatus:         string(o.Payment.Status),
		MerchantTransactionID: o.Payment.MerchantTransactionID,
		PaidAt:                o.Payment.PaidAt,
		RefundID:              o.Payment.RefundID,
		RefundedAmount:        o.Payment.RefundedAmount,
		Status:                string(o.Status),
		Fulfillment:           datatypes.NewJSONType(o.Fulfillment),
		CustomerNotes:         o.CustomerNotes,
		StatusHistory:         datatypes.NewJSONSlice(o.StatusHistory),
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}

	if o.Payment.TransactionID != "" {
		txID := o.Payment.TransactionID
		m.TransactionID = &txID
	}

	return m
}
