// Package response writes the JSON envelope shared by every API endpoint.
package response

import (
	"net/http"

	deliverycontext "lumera/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// Body is the envelope of a successful response.
type Body struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta"`
}

// ErrorBody is the envelope of a failed response.
type ErrorBody struct {
	Error *ErrorInfo `json:"error"`
	Meta  *Meta      `json:"meta"`
}

type ErrorInfo struct {
	Code    string `json:"code"`              // e.g. "ORDER_NOT_FOUND"
	Message string `json:"message"`           // Safe to show to customers
	Details any    `json:"details,omitempty"` // Field rules for validation failures
}

type Meta struct {
	RequestID string `json:"request_id"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, Body{
		Data: data,
		Meta: meta(c),
	})
}

// Message returns a successful response whose data is a single message.
func Message(c echo.Context, message string) error {
	return Success(c, http.StatusOK, map[string]string{"message": message})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, ErrorBody{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: meta(c),
	})
}

func meta(c echo.Context) *Meta {
	return &Meta{
		RequestID: deliverycontext.GetRequestID(c),
	}
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

// BindingError returns a binding error response
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

// Unauthorized returns a 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, nil)
}

// Forbidden returns a 403 error
func Forbidden(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusForbidden, errorCode, message, nil)
}

// NotFound returns a 404 error
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message, nil)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}
