package handler

import (
	"log/slog"
	"net/http"

	"lumera/internal/delivery/api/response"
	deliverycontext "lumera/internal/delivery/context"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC          usecase.AuthUsecase
	PasswordResetUC usecase.PasswordResetUsecase
	Logger          *slog.Logger
}

// AuthHandler serves account, session and password reset endpoints.
type AuthHandler struct {
	authUC  usecase.AuthUsecase
	resetUC usecase.PasswordResetUsecase
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC:  params.AuthUC,
		resetUC: params.PasswordResetUC,
		logger:  params.Logger,
	}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,simple_email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"max=100"`
	Phone    string `json:"phone" validate:"omitempty,in_mobile"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,simple_email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required"`
	OTP      string `json:"otp" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Signup(c.Request().Context(), &usecase.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// GoogleLogin exchanges a Google Sign-In ID token for storefront tokens.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.GoogleLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	var req RefreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authUC.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Successfully logged out")
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	user, err := h.authUC.Me(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.authUC.DeleteAccount(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Account deleted successfully")
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.resetUC.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "OTP sent to your email")
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.resetUC.VerifyOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "OTP verified")
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.resetUC.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.Password); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Password reset successfully")
}
