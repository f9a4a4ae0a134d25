package usecase

import (
	"context"

	"lumera/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderListInput filters the admin order listing.
type OrderListInput struct {
	Status string
	Email  string
	Page   int
	Limit  int
}

// UpdateOrderStatusInput moves an order through fulfillment.
type UpdateOrderStatusInput struct {
	Status         string
	Note           string
	TrackingNumber string
	Carrier        string
}

// Requester identifies who is asking for an order.
type Requester struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// OrderUsecase covers order administration and customer order history.
type OrderUsecase interface {
	List(ctx context.Context, input *OrderListInput) (*entity.Page[*entity.Order], error)

	// Get returns the order when requester is an admin or the order's customer.
	Get(ctx context.Context, orderNumber string, requester Requester) (*entity.Order, error)

	UpdateStatus(ctx context.Context, orderNumber string, input *UpdateOrderStatusInput) (*entity.Order, error)

	// Refund refunds amount rupees, or the whole remaining balance when amount is nil.
	Refund(ctx context.Context, orderNumber string, amount *int64) (*entity.Order, error)

	// QRCode renders the tracking QR code of an existing order as PNG.
	QRCode(ctx context.Context, orderNumber string) ([]byte, error)

	MyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}
