package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roteiro/core/internal/application/services"
	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/logger"
	"github.com/roteiro/core/internal/ports"
)

// CatalogHandler handles the /itens routes.
type CatalogHandler struct {
	catalogService *services.CatalogService
	logger         *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListItems handles GET /itens with optional ?destaque=true and ?q= filters.
// Any non-empty destaque value selects featured items, as the legacy server
// only checked for the parameter's presence.
func (h *CatalogHandler) ListItems(c echo.Context) error {
	var filter ports.ItemFilter
	if c.QueryParam("destaque") != "" {
		featured := true
		filter.Featured = &featured
	}
	if q := c.QueryParam("q"); q != "" {
		filter.Search = &q
	}

	items, err := h.catalogService.ListItems(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("List items failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list items")
	}

	return c.JSON(http.StatusOK, items)
}

// GetItem handles GET /itens/:id.
func (h *CatalogHandler) GetItem(c echo.Context) error {
	item, err := h.catalogService.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entities.ErrItemNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, MsgItemNotFound)
		}
		h.logger.Error("Get item failed", "error", err, "item_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get item")
	}

	return c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /itens (admin only).
func (h *CatalogHandler) CreateItem(c echo.Context) error {
	var req ports.ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.catalogService.CreateItem(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create item failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create item")
	}

	return c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /itens/:id (admin only).
func (h *CatalogHandler) UpdateItem(c echo.Context) error {
	var req ports.ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.catalogService.UpdateItem(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, entities.ErrItemNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, MsgItemNotFound)
		}
		h.logger.Error("Update item failed", "error", err, "item_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update item")
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /itens/:id (admin only).
func (h *CatalogHandler) DeleteItem(c echo.Context) error {
	if err := h.catalogService.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, entities.ErrItemNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, MsgItemNotFound)
		}
		h.logger.Error("Delete item failed", "error", err, "item_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete item")
	}

	return c.NoContent(http.StatusNoContent)
}
