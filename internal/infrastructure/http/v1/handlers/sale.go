package handlers

import (
	"github.com/gin-gonic/gin"

	"stockpilot/internal/domain/documents/sale"
	"stockpilot/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles HTTP requests for Sale documents.
type SaleHandler struct {
	*BaseHandler
	service *sale.Service
}

// NewSaleHandler creates a sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service) *SaleHandler {
	return &SaleHandler{BaseHandler: base, service: service}
}

// Create handles POST /documents/sales.
func (h *SaleHandler) Create(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Create(c.Request.Context(), req.ToEntity(act.UserID), act)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, doc)
}

// Get handles GET /documents/sales/:id.
func (h *SaleHandler) Get(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	docID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID, act)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// List handles GET /documents/sales.
func (h *SaleHandler) List(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	common, err := h.CommonListFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}
	filter := sale.ListFilter{ListFilter: common}

	if filter.CustomerID, err = dto.ParseOptionalID("customerId", c.Query("customerId")); err != nil {
		h.Error(c, err)
		return
	}
	if filter.StoreID, err = dto.ParseOptionalID("storeId", c.Query("storeId")); err != nil {
		h.Error(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		s := sale.Status(status)
		filter.Status = &s
	}

	result, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Update handles PUT /documents/sales/:id.
func (h *SaleHandler) Update(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	docID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.UpdateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Update(c.Request.Context(), req.ToEntity(docID), act)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// Delete handles DELETE /documents/sales/:id.
func (h *SaleHandler) Delete(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	docID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID, act); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
