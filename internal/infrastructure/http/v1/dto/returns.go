package dto

import (
	"time"

	"stockpilot/internal/core/id"
	"stockpilot/internal/domain/documents/purchasereturn"
	"stockpilot/internal/domain/documents/salereturn"
)

// ReturnItemRequest is one line of a return request. Prices are not
// accepted: the engine resolves them from the originating document.
type ReturnItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CreatePurchaseReturnRequest creates a return against a purchase.
type CreatePurchaseReturnRequest struct {
	Date       *time.Time          `json:"date,omitempty"`
	PurchaseID string              `json:"purchaseId" binding:"required,uuid"`
	Status     string              `json:"status,omitempty"`
	Reason     string              `json:"reason,omitempty"`
	Notes      string              `json:"notes,omitempty"`
	Items      []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToEntity converts the request to a domain document.
func (r *CreatePurchaseReturnRequest) ToEntity(createdBy string) *purchasereturn.PurchaseReturn {
	purchaseID, _ := id.Parse(r.PurchaseID)

	doc := purchasereturn.New(createdBy, purchaseID)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Status != "" {
		doc.Status = purchasereturn.Status(r.Status)
	}
	doc.Reason = r.Reason
	doc.Notes = r.Notes

	for _, line := range r.Items {
		productID, _ := id.Parse(line.ProductID)
		doc.AddItem(productID, line.Quantity)
	}

	return doc
}

// UpdatePurchaseReturnRequest replaces a purchase return's mutable
// fields and items. The originating purchase cannot change.
type UpdatePurchaseReturnRequest struct {
	Date   *time.Time          `json:"date,omitempty"`
	Status string              `json:"status" binding:"required"`
	Reason string              `json:"reason,omitempty"`
	Notes  string              `json:"notes,omitempty"`
	Items  []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToEntity converts the request to a domain document with the given ID.
func (r *UpdatePurchaseReturnRequest) ToEntity(docID id.ID) *purchasereturn.PurchaseReturn {
	doc := purchasereturn.New("", id.Nil())
	doc.ID = docID
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Status != "" {
		doc.Status = purchasereturn.Status(r.Status)
	}
	doc.Reason = r.Reason
	doc.Notes = r.Notes

	for _, line := range r.Items {
		productID, _ := id.Parse(line.ProductID)
		doc.AddItem(productID, line.Quantity)
	}

	return doc
}

// CreateSaleReturnRequest creates a return against a sale.
type CreateSaleReturnRequest struct {
	Date   *time.Time          `json:"date,omitempty"`
	SaleID string              `json:"saleId" binding:"required,uuid"`
	Status string              `json:"status,omitempty"`
	Reason string              `json:"reason,omitempty"`
	Notes  string              `json:"notes,omitempty"`
	Items  []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToEntity converts the request to a domain document.
func (r *CreateSaleReturnRequest) ToEntity(createdBy string) *salereturn.SaleReturn {
	saleID, _ := id.Parse(r.SaleID)

	doc := salereturn.New(createdBy, saleID)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Status != "" {
		doc.Status = salereturn.Status(r.Status)
	}
	doc.Reason = r.Reason
	doc.Notes = r.Notes

	for _, line := range r.Items {
		productID, _ := id.Parse(line.ProductID)
		doc.AddItem(productID, line.Quantity)
	}

	return doc
}

// UpdateSaleReturnRequest replaces a sale return's mutable fields and
// items. The originating sale cannot change.
type UpdateSaleReturnRequest struct {
	Date   *time.Time          `json:"date,omitempty"`
	Status string              `json:"status" binding:"required"`
	Reason string              `json:"reason,omitempty"`
	Notes  string              `json:"notes,omitempty"`
	Items  []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToEntity converts the request to a domain document with the given ID.
func (r *UpdateSaleReturnRequest) ToEntity(docID id.ID) *salereturn.SaleReturn {
	doc := salereturn.New("", id.Nil())
	doc.ID = docID
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Status != "" {
		doc.Status = salereturn.Status(r.Status)
	}
	doc.Reason = r.Reason
	doc.Notes = r.Notes

	for _, line := range r.Items {
		productID, _ := id.Parse(line.ProductID)
		doc.AddItem(productID, line.Quantity)
	}

	return doc
}
