package service

import "context"

// GatewayOrder is an order created at the payment gateway before checkout.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // Paise.
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	KeyID    string `json:"keyId"`
}

// GatewayPayment is a payment as the gateway recorded it.
type GatewayPayment struct {
	ID       string
	OrderID  string
	Status   string // e.g. "captured".
	Amount   int64  // Paise.
	Currency string
}

// GatewayRefund is a refund issued at the payment gateway.
type GatewayRefund struct {
	ID     string
	Amount int64 // Paise.
	Status string
}

// PaymentGateway talks to the payment provider.
type PaymentGateway interface {
	// CreateOrder registers an amount, in paise, with the gateway.
	CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*GatewayOrder, error)

	// FetchPayment returns the gateway's record of a payment, including the amount captured.
	FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error)

	// Refund refunds amount paise of a captured payment.
	Refund(ctx context.Context, paymentID string, amount int64) (*GatewayRefund, error)

	// VerifySignature checks the checkout callback signature for orderID and paymentID.
	VerifySignature(orderID, paymentID, signature string) bool
}
