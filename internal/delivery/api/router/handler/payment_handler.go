package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "lumera/internal/delivery/context"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const paymentVerificationFailed = "Payment verification failed"

// PaymentHandlerParams holds dependencies for PaymentHandler, injected by Fx.
type PaymentHandlerParams struct {
	fx.In

	PaymentUC usecase.PaymentUsecase
	Logger    *slog.Logger
}

// PaymentHandler serves the gateway checkout callback. Its responses keep the
// flat {success, ...} shape the checkout page expects instead of the API envelope.
type PaymentHandler struct {
	paymentUC usecase.PaymentUsecase
	logger    *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler.
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: params.PaymentUC,
		logger:    params.Logger,
	}
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string             `json:"razorpay_order_id"`
	RazorpayPaymentID string             `json:"razorpay_payment_id"`
	RazorpaySignature string             `json:"razorpay_signature"`
	OrderData         *usecase.OrderData `json:"orderData"`
}

type VerifyPaymentResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	OrderID       string `json:"orderId,omitempty"`
	PaymentID     string `json:"paymentId,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	Error         string `json:"error,omitempty"`
}

// VerifyPayment checks the callback signature and records the order.
func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()
	log := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	var req VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Malformed payment verification body", slog.Any("error", err))

		return c.JSON(http.StatusBadRequest, VerifyPaymentResponse{Error: domainerrors.ErrMissingPaymentParams.Message()})
	}

	input := &usecase.VerifyPaymentInput{
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
		OrderData:         req.OrderData,
	}
	if userID, ok := deliverycontext.GetUserID(c); ok {
		input.UserID = &userID
	}

	output, err := h.paymentUC.VerifyPayment(ctx, input)
	if err != nil {
		if appErr, ok := errors.AsType[domainerrors.AppError](err); ok && appErr.HTTPCode() == http.StatusBadRequest {
			return c.JSON(http.StatusBadRequest, VerifyPaymentResponse{Error: appErr.Message()})
		}

		log.Error("Payment verification error", slog.Any("error", err))

		return c.JSON(http.StatusInternalServerError, VerifyPaymentResponse{Error: paymentVerificationFailed})
	}

	return c.JSON(http.StatusOK, VerifyPaymentResponse{
		Success:       true,
		Message:       "Payment verified successfully",
		OrderID:       output.OrderNumber,
		PaymentID:     output.PaymentID,
		PaymentStatus: output.PaymentStatus,
	})
}
