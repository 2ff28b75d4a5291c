package handler

import (
	"net/http"

	"github.com/Guimenn/mobiliai-inventory/internal/apperrors"
	"github.com/Guimenn/mobiliai-inventory/internal/inventory"
	"github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"
	"github.com/Guimenn/mobiliai-inventory/pkg/logger"
	"github.com/Guimenn/mobiliai-inventory/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc inventory.UseCase
}

func NewInventoryHandler(uc inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func (h *InventoryHandler) Register(g *echo.Group) {
	g.GET("/stores/:storeId/inventory", h.GetStoreInventory)
	g.GET("/stores/:storeId/inventory/low", h.GetLowStock)
	g.GET("/stores/:storeId/inventory/available", h.GetAvailableProducts)
	g.PUT("/stores/:storeId/inventory/:productId", h.UpdateStoreInventory)
	g.POST("/stores/:storeId/inventory", h.AddProductToStore)
	g.DELETE("/stores/:storeId/inventory/:productId", h.RemoveProductFromStore)
}

func (h *InventoryHandler) GetStoreInventory(c echo.Context) error {
	log := logger.FromEcho(c)
	storeID := c.Param("storeId")

	entries, err := h.uc.GetStoreInventory(c.Request().Context(), storeID)
	if err != nil {
		return h.fail(c, log, "failed to retrieve store inventory", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"items": entries, "total": len(entries)})
}

func (h *InventoryHandler) GetLowStock(c echo.Context) error {
	log := logger.FromEcho(c)
	storeID := c.Param("storeId")

	entries, err := h.uc.GetLowStock(c.Request().Context(), storeID)
	if err != nil {
		return h.fail(c, log, "failed to retrieve low stock", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"items": entries, "total": len(entries)})
}

func (h *InventoryHandler) GetAvailableProducts(c echo.Context) error {
	log := logger.FromEcho(c)
	storeID := c.Param("storeId")

	items, err := h.uc.GetAvailableProducts(c.Request().Context(), storeID, c.QueryParam("search"))
	if err != nil {
		return h.fail(c, log, "failed to retrieve available products", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
}

type updateInventoryRequest struct {
	Quantity *int    `json:"quantity"`
	MinStock *int    `json:"min_stock"`
	MaxStock *int    `json:"max_stock"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

func (h *InventoryHandler) UpdateStoreInventory(c echo.Context) error {
	log := logger.FromEcho(c)

	var req updateInventoryRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	input := &dto.UpdateStoreInventoryInput{
		StoreID:   c.Param("storeId"),
		ProductID: c.Param("productId"),
		Quantity:  req.Quantity,
		MinStock:  req.MinStock,
		MaxStock:  req.MaxStock,
		Location:  req.Location,
		Notes:     req.Notes,
	}

	entry, err := h.uc.UpdateStoreInventory(c.Request().Context(), input)
	if err != nil {
		return h.fail(c, log, "failed to update store inventory", err)
	}

	prometheus.RecordAllocationOperation("update")
	h.observe(entry)

	return c.JSON(http.StatusOK, entry)
}

type addProductRequest struct {
	ProductID       string `json:"product_id"`
	InitialQuantity int    `json:"initial_quantity"`
	MinStock        int    `json:"min_stock"`
}

func (h *InventoryHandler) AddProductToStore(c echo.Context) error {
	log := logger.FromEcho(c)

	var req addProductRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
	}

	input := &dto.AddProductToStoreInput{
		StoreID:         c.Param("storeId"),
		ProductID:       req.ProductID,
		InitialQuantity: req.InitialQuantity,
		MinStock:        req.MinStock,
	}

	entry, err := h.uc.AddProductToStore(c.Request().Context(), input)
	if err != nil {
		return h.fail(c, log, "failed to add product to store", err)
	}

	prometheus.RecordAllocationOperation("add")
	h.observe(entry)

	return c.JSON(http.StatusCreated, entry)
}

func (h *InventoryHandler) RemoveProductFromStore(c echo.Context) error {
	log := logger.FromEcho(c)
	storeID := c.Param("storeId")
	productID := c.Param("productId")

	if err := h.uc.RemoveProductFromStore(c.Request().Context(), storeID, productID); err != nil {
		return h.fail(c, log, "failed to remove product from store", err)
	}

	prometheus.RecordAllocationOperation("remove")
	prometheus.StoreInventoryGauge.DeleteLabelValues(storeID, productID)

	return c.NoContent(http.StatusNoContent)
}

func (h *InventoryHandler) observe(entry *dto.InventoryEntry) {
	if entry.Clamped {
		prometheus.AllocationClampedCounter.Inc()
	}
	if entry.Created {
		prometheus.LazyRowCreatedCounter.Inc()
	}
	prometheus.StoreInventoryGauge.WithLabelValues(entry.StoreID, entry.ProductID).Set(float64(entry.Quantity))
}

func (h *InventoryHandler) fail(c echo.Context, log *zap.Logger, msg string, err error) error {
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
		log.Error(msg, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
	}
}
