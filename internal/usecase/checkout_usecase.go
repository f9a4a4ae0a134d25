package usecase

import (
	"context"

	"lumera/internal/domain/entity"
	"lumera/internal/domain/pricing"
)

// QuoteInput selects the items to price: a stored cart, or an explicit item list.
type QuoteInput struct {
	CartID     string
	Items      []entity.CartItem
	OrderNote  string
	CouponCode string
}

// QuoteOutput is the priced checkout with the lines it was computed from.
type QuoteOutput struct {
	Items     []entity.CartItem `json:"items"`
	Breakdown pricing.Breakdown `json:"breakdown"`
}

// PaymentOrderInput is what the checkout page submits before opening the gateway.
type PaymentOrderInput struct {
	QuoteInput
	Address entity.ShippingAddress
}

// PaymentOrderOutput carries what the browser needs to open the gateway checkout.
type PaymentOrderOutput struct {
	RazorpayOrderID string            `json:"razorpayOrderId"`
	Amount          int64             `json:"amount"` // Paise.
	Currency        string            `json:"currency"`
	KeyID           string            `json:"keyId"`
	Receipt         string            `json:"receipt"`
	Breakdown       pricing.Breakdown `json:"breakdown"`
}

// CheckoutUsecase prices carts server-side and opens gateway orders.
type CheckoutUsecase interface {
	Quote(ctx context.Context, input *QuoteInput) (*QuoteOutput, error)
	CreatePaymentOrder(ctx context.Context, input *PaymentOrderInput) (*PaymentOrderOutput, error)
}
