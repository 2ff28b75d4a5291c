package handler

import (
	"net/http"
	"strconv"

	"github.com/Guimenn/mobiliai-inventory/internal/apperrors"
	"github.com/Guimenn/mobiliai-inventory/internal/auth"
	"github.com/Guimenn/mobiliai-inventory/internal/product"
	"github.com/Guimenn/mobiliai-inventory/internal/product/dto"
	"github.com/Guimenn/mobiliai-inventory/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc product.UseCase
}

func NewProductHandler(uc product.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) Register(g *echo.Group) {
	g.GET("/stores/:storeId/catalog/products", h.GetCatalogProducts)
	g.POST("/stores/:storeId/catalog/products/:productId", h.LinkProductToStore)
	g.PUT("/products/:productId/managed", h.UpdateManagedProduct)
}

// GetCatalogProducts lists global products the store has not yet adopted
// into its catalog.
func (h *ProductHandler) GetCatalogProducts(c echo.Context) error {
	filters := &dto.CatalogFilters{
		StoreID:     c.Param("storeId"),
		SearchQuery: c.QueryParam("search"),
		Page:        1,
		PageSize:    20,
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		filters.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		filters.PageSize = limit
	}

	products, count, err := h.uc.GetCatalogProducts(c.Request().Context(), filters)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products": products,
		"total":    count,
		"page":     filters.Page,
		"limit":    filters.PageSize,
	})
}

func (h *ProductHandler) LinkProductToStore(c echo.Context) error {
	storeID := c.Param("storeId")
	productID := c.Param("productId")

	if err := h.uc.LinkProductToStore(c.Request().Context(), storeID, productID); err != nil {
		return fail(c, err)
	}

	logger.FromEcho(c).Info("product linked to store catalog",
		zap.String("store_id", storeID),
		zap.String("product_id", productID),
	)
	return c.JSON(http.StatusOK, echo.Map{"message": "product added to store catalog"})
}

// UpdateManagedProduct handles the legacy product-level edit surface.
// The acting store comes from the token claim; admins without a store
// claim name one via query param.
func (h *ProductHandler) UpdateManagedProduct(c echo.Context) error {
	storeID := auth.GetStoreID(c)
	if storeID == "" {
		storeID = c.QueryParam("store_id")
	}
	if storeID == "" {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no store associated with this account"})
	}

	var patch dto.ManagedProductPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	view, err := h.uc.UpdateManagedProduct(c.Request().Context(), &dto.UpdateManagedProductInput{
		ManagerStoreID: storeID,
		ProductID:      c.Param("productId"),
		Patch:          patch,
	})
	if err != nil {
		return fail(c, err)
	}

	logger.FromEcho(c).Info("managed product updated",
		zap.String("user_id", auth.GetUserID(c)),
		zap.String("role", auth.GetRole(c)),
		zap.String("store_id", storeID),
		zap.String("product_id", view.ID),
		zap.Bool("via_store_inventory", view.AvailableViaStoreInventory),
	)
	return c.JSON(http.StatusOK, view)
}

func fail(c echo.Context, err error) error {
	switch {
	case apperrors.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case apperrors.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case apperrors.IsForbidden(err):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case apperrors.IsConflict(err):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		logger.FromEcho(c).Error("unhandled error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
