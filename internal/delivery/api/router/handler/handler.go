// Package handler contains the HTTP handlers for the storefront API.
package handler

import (
	"encoding/json"
	"net/http"

	"lumera/internal/delivery/api/response"
	deliverycontext "lumera/internal/delivery/context"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/usecase"

	"github.com/labstack/echo/v4"
)

// bindAndValidate binds the request into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails("malformed request body")
	}

	return c.Validate(req)
}

// readPatch returns the raw JSON object of a PATCH body.
func readPatch(c echo.Context) (json.RawMessage, error) {
	var patch json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&patch); err != nil {
		return nil, domainerrors.ErrInvalidInput.WithDetails("malformed request body")
	}

	return patch, nil
}

func requester(c echo.Context) usecase.Requester {
	userID, _ := deliverycontext.GetUserID(c)

	return usecase.Requester{
		UserID:  userID,
		IsAdmin: deliverycontext.HasRole(c, entity.RoleAdmin),
	}
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
