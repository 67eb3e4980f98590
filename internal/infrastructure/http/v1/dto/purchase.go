package dto

import (
	"time"

	"stockpilot/internal/core/id"
	"stockpilot/internal/core/types"
	"stockpilot/internal/domain/documents/purchase"
)

// CreatePurchaseRequest creates a purchase document.
type CreatePurchaseRequest struct {
	Date       *time.Time            `json:"date,omitempty"`
	VendorID   string                `json:"vendorId" binding:"required,uuid"`
	StoreID    string                `json:"storeId" binding:"required,uuid"`
	Status     string                `json:"status,omitempty"`
	PaidAmount types.Money           `json:"paidAmount"`
	Notes      string                `json:"notes,omitempty"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseItemRequest is one line of a create/update request.
type PurchaseItemRequest struct {
	ProductID string      `json:"productId" binding:"required,uuid"`
	Quantity  int64       `json:"quantity" binding:"required,gt=0"`
	UnitPrice types.Money `json:"unitPrice"`
}

// ToEntity converts the request to a domain document.
func (r *CreatePurchaseRequest) ToEntity(createdBy string) *purchase.Purchase {
	vendorID, _ := id.Parse(r.VendorID)
	storeID, _ := id.Parse(r.StoreID)

	doc := purchase.New(createdBy, vendorID, storeID)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Status != "" {
		doc.Status = purchase.Status(r.Status)
	}
	doc.PaidAmount = r.PaidAmount
	doc.Notes = r.Notes

	for _, line := range r.Items {
		productID, _ := id.Parse(line.ProductID)
		doc.AddItem(productID, line.Quantity, line.UnitPrice)
	}

	return doc
}

// UpdatePurchaseRequest replaces a purchase header and items.
type UpdatePurchaseRequest struct {
	Date       *time.Time            `json:"date,omitempty"`
	VendorID   string                `json:"vendorId" binding:"required,uuid"`
	StoreID    string                `json:"storeId" binding:"required,uuid"`
	Status     string                `json:"status" binding:"required"`
	PaidAmount types.Money           `json:"paidAmount"`
	Notes      string                `json:"notes,omitempty"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToEntity converts the request to a domain document with the given ID.
func (r *UpdatePurchaseRequest) ToEntity(docID id.ID) *purchase.Purchase {
	vendorID, _ := id.Parse(r.VendorID)
	storeID, _ := id.Parse(r.StoreID)

	doc := purchase.New("", vendorID, storeID)
	doc.ID = docID
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Status != "" {
		doc.Status = purchase.Status(r.Status)
	}
	doc.PaidAmount = r.PaidAmount
	doc.Notes = r.Notes

	for _, line := range r.Items {
		productID, _ := id.Parse(line.ProductID)
		doc.AddItem(productID, line.Quantity, line.UnitPrice)
	}

	return doc
}
