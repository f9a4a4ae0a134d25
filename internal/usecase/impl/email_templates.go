package impl

import (
	"fmt"
	"strings"

	"lumera/internal/domain/entity"
	"lumera/internal/domain/service"
)

const emailSignature = "Best regards,\nThe Lumera Team"

// orderConfirmationEmail is sent once a payment is verified. stateName is the
// state as the customer typed it; the stored address carries the code.
func orderConfirmationEmail(order *entity.Order, stateName string) *service.Email {
	name := order.Customer.FirstName
	if name == "" {
		name = "Customer"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", name)
	body.WriteString("Thank you for your order with Lumera Candles! Your order has been successfully placed.\n\n")
	fmt.Fprintf(&body, "Order Number: %s\n", order.OrderNumber)
	fmt.Fprintf(&body, "Order Total: ₹%d\n\n", order.Pricing.Total)

	body.WriteString("Items Ordered:\n")
	for i, item := range order.Items {
		if i > 0 {
			body.WriteString("\n")
		}
		fmt.Fprintf(&body, "- %s (x%d): ₹%d", item.ProductName, item.Quantity, item.UnitPrice*int64(item.Quantity))
	}
	body.WriteString("\n\n")

	addr := order.ShippingAddress
	if stateName == "" {
		stateName = addr.State
	}
	body.WriteString("Shipping Address:\n")
	body.WriteString(addr.AddressLine1 + "\n")
	if addr.AddressLine2 != "" {
		body.WriteString(addr.AddressLine2 + "\n")
	}
	fmt.Fprintf(&body, "%s, %s - %s\n\n", addr.City, stateName, addr.Pincode)

	body.WriteString("We will notify you once your order is shipped.\n\n")
	body.WriteString(emailSignature)

	return &service.Email{
		To:      order.Customer.Email,
		Subject: "Order Confirmed - " + order.OrderNumber,
		Body:    body.String(),
	}
}

func passwordResetEmail(to, otp string) *service.Email {
	return &service.Email{
		To:      to,
		Subject: "Your Lumera Password Reset OTP",
		Body: fmt.Sprintf("Your one-time password (OTP) for resetting your password is: %s\n\n"+
			"This OTP will expire in 10 minutes.\n\n"+
			"If you did not request this, please ignore this email.", otp),
	}
}

func welcomeEmail(user *entity.User) *service.Email {
	name := user.Name
	if name == "" {
		name = "there"
	}

	return &service.Email{
		To:      user.Email,
		Subject: "Welcome to Lumera Candles!",
		Body: fmt.Sprintf("Hi %s,\n\n"+
			"Welcome to Lumera Candles! We are excited to have you on board.\n\n"+
			"Explore our collection of premium candles at proper pricing.\n\n"+
			emailSignature, name),
	}
}

var orderStatusLabels = map[entity.OrderStatus]string{
	entity.OrderStatusPending:         "pending",
	entity.OrderStatusConfirmed:       "confirmed",
	entity.OrderStatusProcessing:      "being prepared",
	entity.OrderStatusPacked:          "packed",
	entity.OrderStatusShipped:         "on its way",
	entity.OrderStatusOutForDelivery:  "out for delivery",
	entity.OrderStatusDelivered:       "delivered",
	entity.OrderStatusCancelled:       "cancelled",
	entity.OrderStatusReturnRequested: "awaiting return",
	entity.OrderStatusReturned:        "returned",
}

func orderStatusEmail(order *entity.Order) *service.Email {
	name := order.Customer.FirstName
	if name == "" {
		name = "Customer"
	}

	label, ok := orderStatusLabels[order.Status]
	if !ok {
		label = string(order.Status)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", name)
	fmt.Fprintf(&body, "Your order %s is now %s.\n", order.OrderNumber, label)
	if order.Fulfillment.TrackingNumber != "" {
		fmt.Fprintf(&body, "\nCarrier: %s\nTracking Number: %s\n", order.Fulfillment.Carrier, order.Fulfillment.TrackingNumber)
	}
	body.WriteString("\n" + emailSignature)

	return &service.Email{
		To:      order.Customer.Email,
		Subject: "Order Update - " + order.OrderNumber,
		Body:    body.String(),
	}
}
