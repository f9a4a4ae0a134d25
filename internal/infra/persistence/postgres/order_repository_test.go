package postgres

import (
	"testing"
	"time"

	"lumera/internal/domain/entity"
	"lumera/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOrderMapping_PaymentIDIsNullableUnique(t *testing.T) {
	order := &entity.Order{OrderNumber: "LUM2505ABC123", Status: entity.OrderStatusConfirmed}

	m := fromOrderDomain(order)
	assert.Nil(t, m.TransactionID, "empty payment id must map to NULL so the unique index ignores it")

	order.Payment.TransactionID = "pay_123"
	m = fromOrderDomain(order)
	require.NotNil(t, m.TransactionID)
	assert.Equal(t, "pay_123", *m.TransactionID)
}

func TestOrderMapping_KeepsSnapshots(t *testing.T) {
	paidAt := time.Date(2025, 5, 3, 10, 0, 0, 0, time.UTC)
	order := &entity.Order{
		OrderNumber: "LUM2505ABC123",
		Customer:    entity.OrderCustomer{Email: "asha@example.com", FirstName: "Asha"},
		ShippingAddress: entity.OrderAddress{
			AddressLine1: "12 MG Road", City: "Bengaluru", State: "KA", Pincode: "560001", Country: "India",
		},
		Items: []entity.OrderItem{{ProductID: "p1", ProductName: "Velvet Ember", Quantity: 2, UnitPrice: 425, TotalPrice: 850}},
		Pricing: entity.OrderPricing{
			Subtotal: 850, Shipping: entity.OrderShipping{Method: entity.ShippingMethodStandard, Cost: 99}, Total: 949,
		},
		Payment: entity.OrderPayment{Status: entity.PaymentStatusCompleted, TransactionID: "pay_1", PaidAt: &paidAt},
		Status:  entity.OrderStatusConfirmed,
	}

	got := toOrderDomain(fromOrderDomain(order))

	assert.Equal(t, order.ShippingAddress, got.ShippingAddress)
	assert.Equal(t, order.Items, got.Items)
	assert.Equal(t, order.Pricing, got.Pricing)
	assert.Equal(t, "pay_1", got.Payment.TransactionID)
	assert.Equal(t, "asha@example.com", got.Customer.Email)
}

func TestOrderConflict(t *testing.T) {
	assert.ErrorIs(t, orderConflict("orders_order_number_key"), repository.ErrOrderNumberTaken)
	assert.ErrorIs(t, orderConflict("orders_transaction_id_key"), repository.ErrOrderExists)
	assert.ErrorIs(t, orderConflict(""), repository.ErrOrderExists)
	assert.NotErrorIs(t, orderConflict("orders_order_number_key"), repository.ErrOrderExists)
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0, 20, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = normalizePage(3, 500, 20, 100)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)
}

func TestConstraintHelpers(t *testing.T) {
	unique := errors.Wrap(&pgconn.PgError{Code: "23505", ConstraintName: "orders_transaction_id_key"}, "insert")
	assert.True(t, isUniqueConstraintViolation(unique))
	assert.Equal(t, "orders_transaction_id_key", uniqueConstraintName(unique))

	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isForeignKeyConstraintViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isNotNullConstraintViolation(&pgconn.PgError{Code: "23502"}))
	assert.True(t, isCheckConstraintViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueConstraintViolation(errors.New("boom")))
}
