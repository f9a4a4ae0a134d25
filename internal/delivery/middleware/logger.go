package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"lumera/config"
	deliverycontext "lumera/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

const healthPath = "/health"

// LoggerMiddleware writes one access log line per request. Successful
// requests are logged only in debug mode; failures always are.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// The error handler writes the response so the final status is known here.
			c.Error(err)
		}

		status := c.Response().Status
		if status >= http.StatusBadRequest || (m.debug && c.Path() != healthPath) {
			m.access(c, status, time.Since(start), err)
		}

		return nil
	}
}

func (m *LoggerMiddleware) access(c echo.Context, status int, latency time.Duration, err error) {
	req := c.Request()

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("route", c.Path()),
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", latency),
		slog.String("remote_ip", c.RealIP()),
	}
	if req.URL.RawQuery != "" {
		attrs = append(attrs, slog.String("query", req.URL.RawQuery))
	}
	if userID, ok := deliverycontext.GetUserID(c); ok {
		attrs = append(attrs, slog.String("user_id", userID.String()))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	// The request logger already carries request_id.
	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).LogAttrs(req.Context(), level, "HTTP request", attrs...)
}
