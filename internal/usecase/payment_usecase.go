package usecase

import (
	"context"

	"lumera/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderDataAddress is the shipping address as assembled by the checkout page.
type OrderDataAddress struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

// OrderData is the client-assembled order snapshot sent with the payment callback.
// Amounts in it are informational; the stored order is priced server-side.
type OrderData struct {
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	ShippingAddress OrderDataAddress  `json:"shippingAddress"`
	Items           []entity.CartItem `json:"items"`
	Subtotal        int64             `json:"subtotal"`
	ShippingCost    int64             `json:"shippingCost"`
	CouponCode      string            `json:"couponCode"`
	CouponDiscount  int64             `json:"couponDiscount"`
	OrderNote       string            `json:"orderNote"`
	Total           int64             `json:"total"`
	CartID          string            `json:"cartId,omitempty"`
}

// VerifyPaymentInput is the gateway checkout callback.
type VerifyPaymentInput struct {
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
	OrderData         *OrderData
	UserID            *uuid.UUID // Set when the customer is signed in.
}

// VerifyPaymentOutput is returned once the signature checks out.
type VerifyPaymentOutput struct {
	OrderNumber   string
	PaymentID     string
	PaymentStatus string

	// Persisted reports whether the order record was written (or already existed).
	Persisted bool
}

// PaymentUsecase finalizes gateway payments.
type PaymentUsecase interface {
	// VerifyPayment authenticates the callback signature. Once it passes, order
	// persistence, the confirmation email and the order event are best-effort:
	// their failures are logged and never returned.
	VerifyPayment(ctx context.Context, input *VerifyPaymentInput) (*VerifyPaymentOutput, error)
}
