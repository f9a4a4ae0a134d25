// Package context carries request-scoped values: the request id, the
// request logger and the authenticated principal.
package context

import (
	"context"
	"log/slog"
	"slices"

	"lumera/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"
	KeyUserID    ContextKey = "user_id"
	KeyRoles     ContextKey = "roles"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the id assigned by the request id middleware, or a
// fresh one for requests that never passed through it.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.NewString()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns "" outside an HTTP request, e.g. in CLI tools.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// GetLoggerOrDefault prefers the request logger, then fallback, then slog.Default.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	if fallback != nil {
		return fallback
	}

	return slog.Default()
}

// SetPrincipal stores the authenticated user on the request.
func SetPrincipal(c echo.Context, userID uuid.UUID, roles []string) {
	c.Set(string(KeyUserID), userID)
	c.Set(string(KeyRoles), roles)
}

func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(string(KeyUserID)).(uuid.UUID)

	return userID, ok && userID != uuid.Nil
}

func GetRoles(c echo.Context) ([]string, bool) {
	roles, ok := c.Get(string(KeyRoles)).([]string)

	return roles, ok
}

func HasRole(c echo.Context, role entity.Role) bool {
	roles, _ := GetRoles(c)

	return slices.Contains(roles, role.String())
}
