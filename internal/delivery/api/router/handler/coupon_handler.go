package handler

import (
	"log/slog"
	"net/http"
	"time"

	"lumera/internal/delivery/api/response"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CouponHandlerParams holds dependencies for CouponHandler, injected by Fx.
type CouponHandlerParams struct {
	fx.In

	CouponUC usecase.CouponUsecase
	Logger   *slog.Logger
}

// CouponHandler serves discount code administration and validation.
type CouponHandler struct {
	couponUC usecase.CouponUsecase
	logger   *slog.Logger
}

// NewCouponHandler is the constructor for CouponHandler.
func NewCouponHandler(params CouponHandlerParams) *CouponHandler {
	return &CouponHandler{
		couponUC: params.CouponUC,
		logger:   params.Logger,
	}
}

type CreateCouponRequest struct {
	Code           string     `json:"code" validate:"required,max=32"`
	Type           string     `json:"type" validate:"required,oneof=percentage fixed"`
	Value          int64      `json:"value" validate:"gt=0"`
	MinOrderAmount int64      `json:"minOrderAmount" validate:"gte=0"`
	Active         *bool      `json:"active"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	UsageLimit     *int       `json:"usageLimit" validate:"omitempty,gte=0"`
}

// UpdateCouponRequest changes only the fields present; clearExpiry and clearLimit drop the optional limits.
type UpdateCouponRequest struct {
	Code           *string    `json:"code" validate:"omitempty,max=32"`
	Type           *string    `json:"type" validate:"omitempty,oneof=percentage fixed"`
	Value          *int64     `json:"value" validate:"omitempty,gt=0"`
	MinOrderAmount *int64     `json:"minOrderAmount" validate:"omitempty,gte=0"`
	Active         *bool      `json:"active"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	UsageLimit     *int       `json:"usageLimit" validate:"omitempty,gte=0"`
	ClearExpiry    bool       `json:"clearExpiry"`
	ClearLimit     bool       `json:"clearLimit"`
}

type ValidateCouponRequest struct {
	Code     string `json:"code" validate:"required"`
	Subtotal int64  `json:"subtotal" validate:"gte=0"`
}

func (h *CouponHandler) List(c echo.Context) error {
	coupons, err := h.couponUC.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, coupons)
}

func (h *CouponHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid coupon ID")
	}

	coupon, err := h.couponUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, coupon)
}

func (h *CouponHandler) Create(c echo.Context) error {
	var req CreateCouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	coupon, err := h.couponUC.Create(c.Request().Context(), &usecase.CreateCouponInput{
		Code:           req.Code,
		Type:           req.Type,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		Active:         req.Active,
		ExpiresAt:      req.ExpiresAt,
		UsageLimit:     req.UsageLimit,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, coupon)
}

func (h *CouponHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid coupon ID")
	}

	var req UpdateCouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	coupon, err := h.couponUC.Update(c.Request().Context(), id, &usecase.UpdateCouponInput{
		Code:           req.Code,
		Type:           req.Type,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		Active:         req.Active,
		ExpiresAt:      req.ExpiresAt,
		UsageLimit:     req.UsageLimit,
		ClearExpiry:    req.ClearExpiry,
		ClearLimit:     req.ClearLimit,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, coupon)
}

func (h *CouponHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid coupon ID")
	}

	if err := h.couponUC.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Coupon deleted successfully")
}

// Validate reports the discount a code grants on a subtotal. Public: the checkout page calls it.
func (h *CouponHandler) Validate(c echo.Context) error {
	var req ValidateCouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	validation, err := h.couponUC.Validate(c.Request().Context(), req.Code, req.Subtotal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, validation)
}
