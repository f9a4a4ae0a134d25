package handler

import (
	"log/slog"
	"net/http"

	"lumera/internal/delivery/api/response"
	deliverycontext "lumera/internal/delivery/context"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves order administration and customer order history.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status" validate:"required"`
	Note           string `json:"note" validate:"max=500"`
	TrackingNumber string `json:"trackingNumber" validate:"max=64"`
	Carrier        string `json:"carrier"`
}

type RefundOrderRequest struct {
	Amount *int64 `json:"amount"` // Whole rupees; omitted refunds the remaining balance.
}

// List handles GET /api/orders?status&email&page&limit.
func (h *OrderHandler) List(c echo.Context) error {
	input := &usecase.OrderListInput{}
	err := echo.QueryParamsBinder(c).
		String("status", &input.Status).
		String("email", &input.Email).
		Int("page", &input.Page).
		Int("limit", &input.Limit).
		BindError()
	if err != nil {
		return domainerrors.ErrInvalidInput.WithDetails("invalid query parameters")
	}

	page, err := h.orderUC.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orderUC.Get(c.Request().Context(), c.Param("number"), requester(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), c.Param("number"), &usecase.UpdateOrderStatusInput{
		Status:         req.Status,
		Note:           req.Note,
		TrackingNumber: req.TrackingNumber,
		Carrier:        req.Carrier,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order)
}

func (h *OrderHandler) Refund(c echo.Context) error {
	var req RefundOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refund input")
	}

	order, err := h.orderUC.Refund(c.Request().Context(), c.Param("number"), req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order)
}

// QRCode serves the order's tracking QR code as PNG to whoever may view the order.
func (h *OrderHandler) QRCode(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderUC.Get(ctx, c.Param("number"), requester(c))
	if err != nil {
		return errors.WithStack(err)
	}

	png, err := h.orderUC.QRCode(ctx, order.OrderNumber)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.orderUC.MyOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders)
}
