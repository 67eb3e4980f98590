package handlers

import (
	"github.com/gin-gonic/gin"

	"stockpilot/internal/domain/documents/purchase"
	"stockpilot/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler handles HTTP requests for Purchase documents.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseHandler creates a purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: base, service: service}
}

// Create handles POST /documents/purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreatePurchaseRequest
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

// Get handles GET /documents/purchases/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
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

// List handles GET /documents/purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	common, err := h.CommonListFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}
	filter := purchase.ListFilter{ListFilter: common}

	if filter.VendorID, err = dto.ParseOptionalID("vendorId", c.Query("vendorId")); err != nil {
		h.Error(c, err)
		return
	}
	if filter.StoreID, err = dto.ParseOptionalID("storeId", c.Query("storeId")); err != nil {
		h.Error(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		s := purchase.Status(status)
		filter.Status = &s
	}

	result, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Update handles PUT /documents/purchases/:id.
func (h *PurchaseHandler) Update(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	docID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.UpdatePurchaseRequest
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

// Delete handles DELETE /documents/purchases/:id.
func (h *PurchaseHandler) Delete(c *gin.Context) {
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
