package handler

import (
	"log/slog"
	"net/http"

	"lumera/internal/delivery/api/response"
	"lumera/internal/domain/entity"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// CheckoutHandler prices checkouts and opens gateway orders.
type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler.
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

// QuoteRequest prices either a stored cart or an explicit item list.
type QuoteRequest struct {
	CartID     string            `json:"cartId"`
	Items      []entity.CartItem `json:"items" validate:"required_without=CartID,dive"`
	OrderNote  string            `json:"orderNote" validate:"max=500"`
	CouponCode string            `json:"couponCode"`
}

type PaymentOrderRequest struct {
	CartID     string                 `json:"cartId"`
	Items      []entity.CartItem      `json:"items" validate:"required_without=CartID,dive"`
	OrderNote  string                 `json:"orderNote" validate:"max=500"`
	CouponCode string                 `json:"couponCode"`
	Address    entity.ShippingAddress `json:"address"`
}

func (h *CheckoutHandler) Quote(c echo.Context) error {
	var req QuoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.checkoutUC.Quote(c.Request().Context(), &usecase.QuoteInput{
		CartID:     req.CartID,
		Items:      req.Items,
		OrderNote:  req.OrderNote,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// PaymentOrder validates the shipping address, prices the cart and opens a gateway order.
func (h *CheckoutHandler) PaymentOrder(c echo.Context) error {
	var req PaymentOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.checkoutUC.CreatePaymentOrder(c.Request().Context(), &usecase.PaymentOrderInput{
		QuoteInput: usecase.QuoteInput{
			CartID:     req.CartID,
			Items:      req.Items,
			OrderNote:  req.OrderNote,
			CouponCode: req.CouponCode,
		},
		Address: req.Address.Trimmed(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output)
}
