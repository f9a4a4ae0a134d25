package handler

import (
	"log/slog"
	"net/http"

	"lumera/internal/delivery/api/response"
	"lumera/internal/domain/configurator"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC         usecase.CartUsecase
	ConfiguratorUC usecase.ConfiguratorUsecase
	Logger         *slog.Logger
}

// CartHandler serves server-side carts and the candle configurator.
type CartHandler struct {
	cartUC         usecase.CartUsecase
	configuratorUC usecase.ConfiguratorUsecase
	logger         *slog.Logger
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC:         params.CartUC,
		configuratorUC: params.ConfiguratorUC,
		logger:         params.Logger,
	}
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=99"`
}

// CustomCandleRequest carries a configurator build and how many to add or price.
type CustomCandleRequest struct {
	Configuration configurator.Configuration `json:"configuration"`
	Quantity      int                        `json:"quantity"`
}

func (h *CartHandler) Create(c echo.Context) error {
	cart, err := h.cartUC.Create(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, cart)
}

func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.cartUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart)
}

// AddItem adds a catalog product; the price always comes from the catalog.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.cartUC.AddProduct(c.Request().Context(), c.Param("id"), req.ProductID, req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart)
}

func (h *CartHandler) AddCustom(c echo.Context) error {
	var req CustomCandleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cart, err := h.cartUC.AddCustom(c.Request().Context(), c.Param("id"), req.Configuration, req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart)
}

// UpdateItem sets a line's quantity; zero removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req UpdateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cart, err := h.cartUC.UpdateItem(c.Request().Context(), c.Param("id"), c.Param("itemId"), req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	cart, err := h.cartUC.RemoveItem(c.Request().Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart)
}

func (h *CartHandler) Delete(c echo.Context) error {
	if err := h.cartUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Cart cleared")
}

// ConfiguratorOptions lists every option the builder offers with its price delta.
func (h *CartHandler) ConfiguratorOptions(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.configuratorUC.Options(c.Request().Context()))
}

// ConfiguratorQuote prices a build and reports which wizard steps are complete.
func (h *CartHandler) ConfiguratorQuote(c echo.Context) error {
	var req CustomCandleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.configuratorUC.Quote(c.Request().Context(), req.Configuration, req.Quantity))
}
