package handlers

import (
	"github.com/gin-gonic/gin"

	"stockpilot/internal/domain/registers/inventory"
	"stockpilot/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles HTTP requests for the inventory register.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates an inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, service: service}
}

// Get handles GET /inventory/:id.
func (h *InventoryHandler) Get(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	rowID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	row, err := h.service.Get(c.Request.Context(), rowID, act)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, row)
}

// List handles GET /inventory.
func (h *InventoryHandler) List(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	filter, err := h.listFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// ListLowStock handles GET /inventory/low-stock.
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	filter, err := h.listFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.ListLowStock(c.Request.Context(), act, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Adjust handles POST /inventory/:id/adjust.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	rowID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.AdjustInventoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	row, err := h.service.Adjust(c.Request.Context(), rowID, req.Adjustment, act)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, row)
}

func (h *InventoryHandler) listFilter(c *gin.Context) (inventory.ListFilter, error) {
	common, err := h.CommonListFilter(c)
	if err != nil {
		return inventory.ListFilter{}, err
	}
	filter := inventory.ListFilter{ListFilter: common}

	if filter.ProductID, err = dto.ParseOptionalID("productId", c.Query("productId")); err != nil {
		return inventory.ListFilter{}, err
	}
	if filter.StoreID, err = dto.ParseOptionalID("storeId", c.Query("storeId")); err != nil {
		return inventory.ListFilter{}, err
	}
	return filter, nil
}
