package errors

import (
	"net/http"

	"lumera/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors derived from the same predefined value through WithDetails.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode && e.httpCode == t.httpCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User and account errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"No account found with this email",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"An account with this email already exists",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid or expired refresh token",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	ErrPasswordTooShort = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_TOO_SHORT",
		"Password must be at least 6 characters",
		"",
	)

	ErrGoogleTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"GOOGLE_TOKEN_INVALID",
		"Google sign-in token could not be verified",
		"",
	)

	// Password reset errors
	ErrInvalidOTP = NewBaseError(
		http.StatusBadRequest,
		"invalid_otp",
		"Invalid OTP",
		"",
	)

	ErrOTPExpired = NewBaseError(
		http.StatusBadRequest,
		"otp_expired",
		"OTP has expired",
		"",
	)

	ErrEmailDeliveryFailed = NewBaseError(
		http.StatusInternalServerError,
		"EMAIL_DELIVERY_FAILED",
		"Failed to send email",
		"",
	)

	// Catalog errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrProductUnavailable = NewBaseError(
		http.StatusConflict,
		"PRODUCT_UNAVAILABLE",
		"Product is not available for purchase",
		"",
	)

	ErrCollectionNotFound = NewBaseError(
		http.StatusNotFound,
		"COLLECTION_NOT_FOUND",
		"Collection not found",
		"",
	)

	ErrSlugTaken = NewBaseError(
		http.StatusConflict,
		"SLUG_TAKEN",
		"Slug is already in use",
		"",
	)

	ErrMediaNotFound = NewBaseError(
		http.StatusNotFound,
		"MEDIA_NOT_FOUND",
		"Media not found",
		"",
	)

	ErrMediaTooLarge = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"MEDIA_TOO_LARGE",
		"Uploaded file is too large",
		"",
	)

	// Cart and configurator errors
	ErrCartNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_NOT_FOUND",
		"Cart not found",
		"",
	)

	ErrCartItemNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_ITEM_NOT_FOUND",
		"Item is not in the cart",
		"",
	)

	ErrCartEmpty = NewBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"Cart is empty",
		"",
	)

	ErrCartConflict = NewBaseError(
		http.StatusConflict,
		"CART_CONFLICT",
		"Cart was modified concurrently, please retry",
		"",
	)

	ErrInvalidConfiguration = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CONFIGURATION",
		"Candle configuration is incomplete or invalid",
		"",
	)

	// Coupon errors
	ErrCouponNotFound = NewBaseError(
		http.StatusNotFound,
		"COUPON_NOT_FOUND",
		"Invalid coupon code",
		"",
	)

	ErrCouponInactive = NewBaseError(
		http.StatusBadRequest,
		"COUPON_INACTIVE",
		"Coupon is not active",
		"",
	)

	ErrCouponExpired = NewBaseError(
		http.StatusBadRequest,
		"COUPON_EXPIRED",
		"Coupon has expired",
		"",
	)

	ErrCouponUsageExceeded = NewBaseError(
		http.StatusBadRequest,
		"COUPON_USAGE_EXCEEDED",
		"Coupon usage limit reached",
		"",
	)

	ErrCouponMinimumNotMet = NewBaseError(
		http.StatusBadRequest,
		"COUPON_MINIMUM_NOT_MET",
		"Order does not meet the coupon minimum",
		"",
	)

	ErrCouponCodeTaken = NewBaseError(
		http.StatusConflict,
		"COUPON_CODE_TAKEN",
		"Coupon code already exists",
		"",
	)

	// Payment and order errors
	ErrMissingPaymentParams = NewBaseError(
		http.StatusBadRequest,
		"MISSING_PAYMENT_PARAMS",
		"Missing payment verification parameters",
		"",
	)

	ErrInvalidPaymentSignature = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PAYMENT_SIGNATURE",
		"Invalid payment signature",
		"",
	)

	ErrPaymentGatewayUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"PAYMENT_GATEWAY_UNAVAILABLE",
		"Payment gateway is unavailable, please try again",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrInvalidOrderStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ORDER_STATUS",
		"Unknown order status",
		"",
	)

	ErrRefundNotAllowed = NewBaseError(
		http.StatusConflict,
		"REFUND_NOT_ALLOWED",
		"Order cannot be refunded",
		"",
	)

	// Generic errors
	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Invalid input",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Permission denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// ValidationError carries field-scoped validation failures.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from field -> rule pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

func (e *ValidationError) Message() string {
	return "Please correct the highlighted fields"
}

func (e *ValidationError) Details() string {
	return ""
}
