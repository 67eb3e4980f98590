package dto

import (
	"time"

	"stockpilot/internal/core/id"
	"stockpilot/internal/domain/documents/transfer"
)

// CreateTransferRequest creates an inter-store transfer.
type CreateTransferRequest struct {
	Date        *time.Time            `json:"date,omitempty"`
	FromStoreID string                `json:"fromStoreId" binding:"required,uuid"`
	ToStoreID   string                `json:"toStoreId" binding:"required,uuid"`
	Status      string                `json:"status,omitempty"`
	Notes       string                `json:"notes,omitempty"`
	Items       []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TransferItemRequest is one line of a create/update request.
type TransferItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// ToEntity converts the request to a domain document.
func (r *CreateTransferRequest) ToEntity(createdBy string) *transfer.Transfer {
	fromStoreID, _ := id.Parse(r.FromStoreID)
	toStoreID, _ := id.Parse(r.ToStoreID)

	doc := transfer.New(createdBy, fromStoreID, toStoreID)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Status != "" {
		doc.Status = transfer.Status(r.Status)
	}
	doc.Notes = r.Notes

	for _, line := range r.Items {
		productID, _ := id.Parse(line.ProductID)
		doc.AddItem(productID, line.Quantity)
	}

	return doc
}

// UpdateTransferRequest replaces a transfer header and items.
type UpdateTransferRequest struct {
	Date        *time.Time            `json:"date,omitempty"`
	FromStoreID string                `json:"fromStoreId" binding:"required,uuid"`
	ToStoreID   string                `json:"toStoreId" binding:"required,uuid"`
	Status      string                `json:"status" binding:"required"`
	Notes       string                `json:"notes,omitempty"`
	Items       []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToEntity converts the request to a domain document with the given ID.
func (r *UpdateTransferRequest) ToEntity(docID id.ID) *transfer.Transfer {
	fromStoreID, _ := id.Parse(r.FromStoreID)
	toStoreID, _ := id.Parse(r.ToStoreID)

	doc := transfer.New("", fromStoreID, toStoreID)
	doc.ID = docID
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Status != "" {
		doc.Status = transfer.Status(r.Status)
	}
	doc.Notes = r.Notes

	for _, line := range r.Items {
		productID, _ := id.Parse(line.ProductID)
		doc.AddItem(productID, line.Quantity)
	}

	return doc
}
