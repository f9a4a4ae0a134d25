// Package razorpay implements service.PaymentGateway on the Razorpay API.
package razorpay

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"lumera/config"
	"lumera/internal/domain/service"
	"lumera/internal/errors"

	razorpaysdk "github.com/razorpay/razorpay-go"
	"github.com/sony/gobreaker/v2"
)

type payload = map[string]interface{}

// api is the subset of the Razorpay SDK the gateway calls.
type api interface {
	CreateOrder(data payload) (payload, error)
	FetchPayment(paymentID string) (payload, error)
	Refund(paymentID string, amount int, data payload) (payload, error)
}

type sdkClient struct {
	client *razorpaysdk.Client
}

func (c *sdkClient) CreateOrder(data payload) (payload, error) {
	return c.client.Order.Create(data, nil)
}

func (c *sdkClient) FetchPayment(paymentID string) (payload, error) {
	return c.client.Payment.Fetch(paymentID, nil, nil)
}

func (c *sdkClient) Refund(paymentID string, amount int, data payload) (payload, error) {
	return c.client.Payment.Refund(paymentID, amount, data, nil)
}

// Gateway calls Razorpay through a circuit breaker.
type Gateway struct {
	api      api
	breaker  *gobreaker.CircuitBreaker[payload]
	keyID    string
	secret   string
	currency string
	logger   *slog.Logger
}

// NewGateway creates a Razorpay payment gateway
func NewGateway(cfg *config.Config, logger *slog.Logger) (service.PaymentGateway, error) {
	if cfg.Razorpay == nil || cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		return nil, errors.New("razorpay key id and secret are required")
	}

	client := razorpaysdk.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	return newGateway(&sdkClient{client: client}, cfg.Razorpay, logger), nil
}

func newGateway(api api, cfg *config.RazorpayConfig, logger *slog.Logger) *Gateway {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	timeout := cfg.BreakerTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[payload](gobreaker.Settings{
		Name:    "razorpay",
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	currency := cfg.Currency
	if currency == "" {
		currency = "INR"
	}

	return &Gateway{
		api:      api,
		breaker:  breaker,
		keyID:    cfg.KeyID,
		secret:   cfg.KeySecret,
		currency: currency,
		logger:   logger,
	}
}

func (g *Gateway) execute(ctx context.Context, call func() (payload, error)) (payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return g.breaker.Execute(call)
}

// CreateOrder registers amount paise with the gateway.
func (g *Gateway) CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*service.GatewayOrder, error) {
	data := payload{
		"amount":   amount,
		"currency": g.currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	resp, err := g.execute(ctx, func() (payload, error) {
		return g.api.CreateOrder(data)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create razorpay order")
	}

	id := stringField(resp, "id")
	if id == "" {
		return nil, errors.New("razorpay order response has no id")
	}

	order := &service.GatewayOrder{
		ID:       id,
		Amount:   int64Field(resp, "amount"),
		Currency: stringField(resp, "currency"),
		Receipt:  stringField(resp, "receipt"),
		KeyID:    g.keyID,
	}
	if order.Amount == 0 {
		order.Amount = amount
	}
	if order.Currency == "" {
		order.Currency = g.currency
	}

	return order, nil
}

func (g *Gateway) FetchPayment(ctx context.Context, paymentID string) (*service.GatewayPayment, error) {
	resp, err := g.execute(ctx, func() (payload, error) {
		return g.api.FetchPayment(paymentID)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch razorpay payment %s", paymentID)
	}

	return &service.GatewayPayment{
		ID:       stringField(resp, "id"),
		OrderID:  stringField(resp, "order_id"),
		Status:   stringField(resp, "status"),
		Amount:   int64Field(resp, "amount"),
		Currency: stringField(resp, "currency"),
	}, nil
}

// Refund issues a normal-speed refund. A zero amount refunds the full payment.
func (g *Gateway) Refund(ctx context.Context, paymentID string, amount int64) (*service.GatewayRefund, error) {
	resp, err := g.execute(ctx, func() (payload, error) {
		return g.api.Refund(paymentID, int(amount), payload{"speed": "normal"})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to refund razorpay payment %s", paymentID)
	}

	return &service.GatewayRefund{
		ID:     stringField(resp, "id"),
		Amount: int64Field(resp, "amount"),
		Status: stringField(resp, "status"),
	}, nil
}

func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(g.secret, orderID, paymentID, signature)
}

func stringField(p payload, key string) string {
	v, _ := p[key].(string)

	return v
}

// int64Field reads a JSON number, which the SDK decodes as float64.
func int64Field(p payload, key string) int64 {
	switch v := p[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)

		return n
	default:
		return 0
	}
}
