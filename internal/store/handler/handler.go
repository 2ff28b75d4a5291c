package handler

import (
	"net/http"
	"strconv"

	"github.com/Guimenn/mobiliai-inventory/internal/apperrors"
	"github.com/Guimenn/mobiliai-inventory/internal/store"
	"github.com/Guimenn/mobiliai-inventory/internal/store/dto"
	"github.com/Guimenn/mobiliai-inventory/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StoreHandler struct {
	uc store.UseCase
}

func NewStoreHandler(uc store.UseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

func (h *StoreHandler) Register(g *echo.Group) {
	g.GET("/stores", h.ListStores)
	g.GET("/stores/:storeId", h.GetStore)
}

func (h *StoreHandler) ListStores(c echo.Context) error {
	log := logger.FromEcho(c)

	filters := &dto.StoreFilters{
		SearchQuery: c.QueryParam("search"),
		Page:        1,
		PageSize:    0,
	}
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		filters.Page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("limit")); err == nil && ps > 0 {
		filters.PageSize = ps
	}

	stores, total, err := h.uc.ListStores(c.Request().Context(), filters)
	if err != nil {
		log.Error("Failed to list stores", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve stores"})
	}

	return c.JSON(http.StatusOK, echo.Map{"items": stores, "total": total})
}

func (h *StoreHandler) GetStore(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("storeId")

	s, err := h.uc.GetStore(c.Request().Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		log.Error("Failed to get store", zap.String("store_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve store"})
	}

	return c.JSON(http.StatusOK, s)
}
