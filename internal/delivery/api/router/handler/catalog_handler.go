package handler

import (
	"log/slog"
	"net/http"

	"lumera/internal/delivery/api/response"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves products and collections.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler.
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// ListProducts handles GET /api/products?featured&status&slug&all&limit&page.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	input := &usecase.ProductListInput{Page: 1, Limit: 10}

	binder := echo.QueryParamsBinder(c).
		String("status", &input.Status).
		String("slug", &input.Slug).
		Bool("all", &input.All).
		Int("page", &input.Page).
		Int("limit", &input.Limit)
	if c.QueryParam("featured") != "" {
		var featured bool
		binder.Bool("featured", &featured)
		input.Featured = &featured
	}
	if err := binder.BindError(); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails("invalid query parameters")
	}

	page, err := h.catalogUC.ListProducts(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogUC.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var product entity.Product
	if err := c.Bind(&product); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	created, err := h.catalogUC.CreateProduct(c.Request().Context(), &product)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	patch, err := readPatch(c)
	if err != nil {
		return err
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalogUC.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Product deleted successfully")
}

func (h *CatalogHandler) ListCollections(c echo.Context) error {
	collections, err := h.catalogUC.ListCollections(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, collections)
}

func (h *CatalogHandler) GetCollection(c echo.Context) error {
	collection, err := h.catalogUC.GetCollection(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, collection)
}

func (h *CatalogHandler) CreateCollection(c echo.Context) error {
	var collection entity.Collection
	if err := c.Bind(&collection); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid collection input")
	}

	created, err := h.catalogUC.CreateCollection(c.Request().Context(), &collection)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateCollection(c echo.Context) error {
	patch, err := readPatch(c)
	if err != nil {
		return err
	}

	collection, err := h.catalogUC.UpdateCollection(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, collection)
}

func (h *CatalogHandler) DeleteCollection(c echo.Context) error {
	if err := h.catalogUC.DeleteCollection(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Collection deleted successfully")
}
