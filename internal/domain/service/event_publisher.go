package service

import (
	"context"
	"time"
)

// Order event types.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderRefunded      = "order.refunded"
)

// OrderEvent is published whenever an order is created or changes state.
type OrderEvent struct {
	RequestID      string    `json:"request_id,omitempty"` // For distributed tracing
	Type           string    `json:"type"`
	OrderNumber    string    `json:"order_number"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	PaymentStatus  string    `json:"payment_status,omitempty"`
	Email          string    `json:"email,omitempty"`
	Total          int64     `json:"total"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
