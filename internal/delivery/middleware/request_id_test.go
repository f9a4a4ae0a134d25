package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "lumera/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "reuses caller id", header: "checkout-7f3a", wantSame: true},
		{name: "generates when missing", header: ""},
		{name: "replaces oversized id", header: strings.Repeat("a", 65)},
		{name: "replaces id with spaces", header: "bad id"},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seenID, ctxID string
			handler := NewRequestIDMiddleware(logger).Process(func(c echo.Context) error {
				seenID = deliverycontext.GetRequestID(c)
				ctxID = deliverycontext.GetRequestIDFromContext(c.Request().Context())

				return nil
			})
			require.NoError(t, handler(c))

			assert.Equal(t, seenID, ctxID)
			assert.Equal(t, seenID, rec.Header().Get(deliverycontext.HeaderXRequestID))
			if tt.wantSame {
				assert.Equal(t, tt.header, seenID)
			} else {
				assert.NotEqual(t, tt.header, seenID)
				assert.Len(t, seenID, 36)
			}
		})
	}
}
