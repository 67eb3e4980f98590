package handlers

import (
	"github.com/gin-gonic/gin"

	"stockpilot/internal/domain/documents/salereturn"
	"stockpilot/internal/infrastructure/http/v1/dto"
)

// SaleReturnHandler handles HTTP requests for SaleReturn documents.
type SaleReturnHandler struct {
	*BaseHandler
	service *salereturn.Service
}

// NewSaleReturnHandler creates a sale return handler.
func NewSaleReturnHandler(base *BaseHandler, service *salereturn.Service) *SaleReturnHandler {
	return &SaleReturnHandler{BaseHandler: base, service: service}
}

// Create handles POST /documents/sale-returns.
func (h *SaleReturnHandler) Create(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreateSaleReturnRequest
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

// Get handles GET /documents/sale-returns/:id.
func (h *SaleReturnHandler) Get(c *gin.Context) {
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

// List handles GET /documents/sale-returns.
func (h *SaleReturnHandler) List(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	common, err := h.CommonListFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}
	filter := salereturn.ListFilter{ListFilter: common}

	if filter.SaleID, err = dto.ParseOptionalID("saleId", c.Query("saleId")); err != nil {
		h.Error(c, err)
		return
	}
	if filter.CustomerID, err = dto.ParseOptionalID("customerId", c.Query("customerId")); err != nil {
		h.Error(c, err)
		return
	}
	if filter.StoreID, err = dto.ParseOptionalID("storeId", c.Query("storeId")); err != nil {
		h.Error(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		s := salereturn.Status(status)
		filter.Status = &s
	}

	result, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Update handles PUT /documents/sale-returns/:id.
func (h *SaleReturnHandler) Update(c *gin.Context) {
	act, ok := h.Actor(c)
	if !ok {
		return
	}

	docID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.UpdateSaleReturnRequest
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

// Delete handles DELETE /documents/sale-returns/:id.
func (h *SaleReturnHandler) Delete(c *gin.Context) {
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
