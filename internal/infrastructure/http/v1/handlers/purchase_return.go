package handlers

import (
	"github.com/gin-gonic/gin"

	"stockpilot/internal/domain/documents/purchasereturn"
	"stockpilot/internal/infrastructure/http/v1/dto"
)

// PurchaseReturnHandler handles HTTP requests for PurchaseReturn documents.
type PurchaseReturnHandler struct {
	*BaseHandler
	service *purchasereturn.Service
}

// NewPurchaseReturnHandler creates a purchase return handler.
func NewPurchaseReturnHandler(base *BaseHandler, service *purchasereturn.Service) *PurchaseReturnHandler {
	return &PurchaseReturnHandler{BaseHandler: base, service: service}
}

// Create handles POST /documents/purchase-returns.
func (h *PurchaseReturnHandler) Create(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreatePurchaseReturnRequest
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

// Get handles GET /documents/purchase-returns/:id.
func (h *PurchaseReturnHandler) Get(c *gin.Context) {
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

// List handles GET /documents/purchase-returns.
func (h *PurchaseReturnHandler) List(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	common, err := h.CommonListFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}
	filter := purchasereturn.ListFilter{ListFilter: common}

	if filter.PurchaseID, err = dto.ParseOptionalID("purchaseId", c.Query("purchaseId")); err != nil {
		h.Error(c, err)
		return
	}
	if filter.VendorID, err = dto.ParseOptionalID("vendorId", c.Query("vendorId")); err != nil {
		h.Error(c, err)
		return
	}
	if filter.StoreID, err = dto.ParseOptionalID("storeId", c.Query("storeId")); err != nil {
		h.Error(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		s := purchasereturn.Status(status)
		filter.Status = &s
	}

	result, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Update handles PUT /documents/purchase-returns/:id.
func (h *PurchaseReturnHandler) Update(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	docID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.UpdatePurchaseReturnRequest
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

// Delete handles DELETE /documents/purchase-returns/:id.
func (h *PurchaseReturnHandler) Delete(c *gin.Context) {
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
