package repository

import (
	"context"

	"lumera/internal/domain/entity"
	"lumera/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when an order lookup matches nothing.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderExists is returned when an order for the same gateway payment already exists.
	ErrOrderExists = errors.New("order already exists")
	// ErrOrderNumberTaken is returned when a new order reuses an existing order number.
	ErrOrderNumberTaken = errors.New("order number already taken")
)

// OrderRepository persists orders together with their item, pricing and history snapshots.
type OrderRepository interface {
	// Create persists a new order. It returns ErrOrderNumberTaken when the order
	// number is in use and ErrOrderExists when the gateway payment id is already recorded.
	Create(ctx context.Context, order *entity.Order) error

	// Update saves status, payment and fulfillment changes.
	Update(ctx context.Context, order *entity.Order) error

	FindByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)

	// FindByPaymentID returns the order recorded for a gateway payment id.
	FindByPaymentID(ctx context.Context, paymentID string) (*entity.Order, error)

	// List returns one page of orders, newest first, and the total match count.
	List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, int64, error)

	// ListByCustomer returns orders placed by userID or, for guest checkouts, with email.
	ListByCustomer(ctx context.Context, userID uuid.UUID, email string) ([]*entity.Order, error)
}
