package handlers

import (
	"github.com/gin-gonic/gin"

	"stockpilot/internal/domain/documents/transfer"
	"stockpilot/internal/infrastructure/http/v1/dto"
)

// TransferHandler handles HTTP requests for Transfer documents.
type TransferHandler struct {
	*BaseHandler
	service *transfer.Service
}

// NewTransferHandler creates a transfer handler.
func NewTransferHandler(base *BaseHandler, service *transfer.Service) *TransferHandler {
	return &TransferHandler{BaseHandler: base, service: service}
}

// Create handles POST /documents/transfers.
func (h *TransferHandler) Create(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreateTransferRequest
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

// Get handles GET /documents/transfers/:id.
func (h *TransferHandler) Get(c *gin.Context) {
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

// List handles GET /documents/transfers.
func (h *TransferHandler) List(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	common, err := h.CommonListFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}
	filter := transfer.ListFilter{ListFilter: common}

	if filter.FromStoreID, err = dto.ParseOptionalID("fromStoreId", c.Query("fromStoreId")); err != nil {
		h.Error(c, err)
		return
	}
	if filter.ToStoreID, err = dto.ParseOptionalID("toStoreId", c.Query("toStoreId")); err != nil {
		h.Error(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		s := transfer.Status(status)
		filter.Status = &s
	}

	result, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Update handles PUT /documents/transfers/:id.
func (h *TransferHandler) Update(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	docID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.UpdateTransferRequest
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

// Delete handles DELETE /documents/transfers/:id.
func (h *TransferHandler) Delete(c *gin.Context) {
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
