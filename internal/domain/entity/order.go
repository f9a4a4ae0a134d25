package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusConfirmed       OrderStatus = "confirmed"
	OrderStatusProcessing      OrderStatus = "processing"
	OrderStatusPacked          OrderStatus = "packed"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusOutForDelivery  OrderStatus = "out_for_delivery"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusCancelled       OrderStatus = "cancelled"
	OrderStatusReturnRequested OrderStatus = "return_requested"
	OrderStatusReturned        OrderStatus = "returned"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusPacked,
		OrderStatusShipped, OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled,
		OrderStatusReturnRequested, OrderStatusReturned:
		return true
	default:
		return false
	}
}

// PaymentStatus is the money state of an order.
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusProcessing    PaymentStatus = "processing"
	PaymentStatusCompleted     PaymentStatus = "completed"
	PaymentStatusFailed        PaymentStatus = "failed"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusPartialRefund PaymentStatus = "partial_refund"
)

// PaymentMethod is how the customer paid.
type PaymentMethod string

const (
	PaymentMethodPhonePeUPI PaymentMethod = "phonepe_upi"
	PaymentMethodGPay       PaymentMethod = "gpay"
	PaymentMethodPaytm      PaymentMethod = "paytm"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
	PaymentMethodCOD        PaymentMethod = "cod"
)

// Carrier is a shipping partner.
type Carrier string

const (
	CarrierDelhivery  Carrier = "delhivery"
	CarrierBluedart   Carrier = "bluedart"
	CarrierDTDC       Carrier = "dtdc"
	CarrierShiprocket Carrier = "shiprocket"
	CarrierIndiaPost  Carrier = "indiapost"
	CarrierEcom       Carrier = "ecom"
)

// IsValid checks if the Carrier is a valid value.
func (c Carrier) IsValid() bool {
	switch c {
	case CarrierDelhivery, CarrierBluedart, CarrierDTDC, CarrierShiprocket, CarrierIndiaPost, CarrierEcom:
		return true
	default:
		return false
	}
}

// ShippingMethod is derived from the shipping cost.
type ShippingMethod string

const (
	ShippingMethodFree     ShippingMethod = "free"
	ShippingMethodStandard ShippingMethod = "standard"
)

// Order is the canonical record of a paid purchase.
type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	UserID          *uuid.UUID
	Customer        OrderCustomer
	ShippingAddress OrderAddress
	Items           []OrderItem
	Pricing         OrderPricing
	Payment         OrderPayment
	Status          OrderStatus
	Fulfillment     OrderFulfillment
	CustomerNotes   string
	StatusHistory   []OrderStatusChange
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderCustomer struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type OrderAddress struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"` // Two-letter state code where known.
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
}

type OrderItem struct {
	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	TotalPrice  int64  `json:"totalPrice"`
}

type OrderDiscount struct {
	Code   string `json:"code"`
	Amount int64  `json:"amount"`
}

type OrderShipping struct {
	Method ShippingMethod `json:"method"`
	Cost   int64          `json:"cost"`
}

type OrderTax struct {
	Rate   int64 `json:"rate"`
	Amount int64 `json:"amount"`
}

type OrderPricing struct {
	Subtotal int64         `json:"subtotal"`
	Discount OrderDiscount `json:"discount"`
	Shipping OrderShipping `json:"shipping"`
	NoteFee  int64         `json:"noteFee"`
	Tax      OrderTax      `json:"tax"`
	Total    int64         `json:"total"`
}

type OrderPayment struct {
	Method                PaymentMethod `json:"method"`
	Status                PaymentStatus `json:"status"`
	TransactionID         string        `json:"transactionId"`         // Gateway payment id.
	MerchantTransactionID string        `json:"merchantTransactionId"` // Gateway order id.
	PaidAt                *time.Time    `json:"paidAt,omitempty"`
	RefundID              string        `json:"refundId,omitempty"`
	RefundedAmount        int64         `json:"refundedAmount,omitempty"`
}

type OrderFulfillment struct {
	TrackingNumber    string     `json:"trackingNumber,omitempty"`
	Carrier           Carrier    `json:"carrier,omitempty"`
	ShippedAt         *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt       *time.Time `json:"deliveredAt,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

type OrderStatusChange struct {
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	ChangedAt time.Time   `json:"changedAt"`
}

// TransitionTo moves the order to status, appends a history entry and stamps
// shipping/delivery times. It reports the previous status.
func (o *Order) TransitionTo(status OrderStatus, note string, now time.Time) OrderStatus {
	previous := o.Status
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, OrderStatusChange{
		Status:    status,
		Note:      note,
		ChangedAt: now,
	})

	switch status {
	case OrderStatusShipped:
		if o.Fulfillment.ShippedAt == nil {
			o.Fulfillment.ShippedAt = &now
		}
	case OrderStatusDelivered:
		if o.Fulfillment.DeliveredAt == nil {
			o.Fulfillment.DeliveredAt = &now
		}
	}

	o.UpdatedAt = now

	return previous
}

// RecomputeItemTotals sets each item's total to unit price × quantity and
// returns the new subtotal.
func (o *Order) RecomputeItemTotals() int64 {
	var subtotal int64
	for i := range o.Items {
		o.Items[i].TotalPrice = lineTotal(o.Items[i].UnitPrice, o.Items[i].Quantity)
		subtotal = addSaturating(subtotal, o.Items[i].TotalPrice)
	}

	return subtotal
}

// RefundableAmount is what remains to be refunded on a paid order.
func (o *Order) RefundableAmount() int64 {
	if o.Payment.Status != PaymentStatusCompleted && o.Payment.Status != PaymentStatusPartialRefund {
		return 0
	}

	return o.Pricing.Total - o.Payment.RefundedAmount
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status OrderStatus
	Email  string
	Page   int
	Limit  int
}
