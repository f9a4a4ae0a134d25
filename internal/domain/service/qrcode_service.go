package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateOrderQR renders a PNG QR code linking to the order's tracking page.
	GenerateOrderQR(orderNumber string) ([]byte, error)

	// ParseOrderQR extracts the order number from scanned QR code content.
	ParseOrderQR(qrData string) (string, error)
}
