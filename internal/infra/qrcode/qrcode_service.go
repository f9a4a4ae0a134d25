package qrcode

import (
	"net/url"
	"strings"

	"lumera/config"
	"lumera/internal/domain/service"
	"lumera/internal/errors"

	"github.com/skip2/go-qrcode"
)

const (
	defaultSize = 256
	ordersPath  = "/orders/"
)

type qrcodeService struct {
	baseURL              string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates the order tracking QR code service from configuration
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level := defaultSize, "M"
	if cfg.QRCode != nil {
		size, level = cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel
	}

	baseURL := ""
	if cfg.Storefront != nil {
		baseURL = cfg.Storefront.BaseURL
	}

	return newQRCodeService(baseURL, size, level)
}

func newQRCodeService(baseURL string, size int, errorCorrectionLevel string) *qrcodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		baseURL:              strings.TrimRight(baseURL, "/"),
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// TrackingURL is the storefront page encoded into an order's QR code.
func (s *qrcodeService) TrackingURL(orderNumber string) string {
	return s.baseURL + ordersPath + url.PathEscape(orderNumber)
}

// GenerateOrderQR renders the tracking URL as a PNG
func (s *qrcodeService) GenerateOrderQR(orderNumber string) ([]byte, error) {
	if orderNumber == "" {
		return nil, errors.New("order number is required")
	}

	qrCode, err := qrcode.New(s.TrackingURL(orderNumber), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseOrderQR extracts the order number from a scanned tracking URL
func (s *qrcodeService) ParseOrderQR(qrData string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(qrData))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse QR code data")
	}

	idx := strings.LastIndex(u.Path, ordersPath)
	if idx < 0 {
		return "", errors.Errorf("invalid QR code path: %s", u.Path)
	}

	orderNumber := strings.Trim(u.Path[idx+len(ordersPath):], "/")
	if orderNumber == "" || strings.Contains(orderNumber, "/") {
		return "", errors.Errorf("invalid QR code path: %s", u.Path)
	}

	return orderNumber, nil
}
