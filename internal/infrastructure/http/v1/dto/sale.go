package dto

import (
	"time"

	"stockpilot/internal/core/id"
	"stockpilot/internal/core/types"
	"stockpilot/internal/domain/documents/sale"
)

// CreateSaleRequest creates a sale document. CustomerID is optional:
// counter sales have no customer.
type CreateSaleRequest struct {
	Date       *time.Time        `json:"date,omitempty"`
	StoreID    string            `json:"storeId" binding:"required,uuid"`
	CustomerID string            `json:"customerId,omitempty" binding:"omitempty,uuid"`
	Status     string            `json:"status,omitempty"`
	Discount   types.Money       `json:"discount"`
	Tax        types.Money       `json:"tax"`
	PaidAmount types.Money       `json:"paidAmount"`
	Notes      string            `json:"notes,omitempty"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleItemRequest is one line of a create/update request.
type SaleItemRequest struct {
	ProductID string      `json:"productId" binding:"required,uuid"`
	Quantity  int64       `json:"quantity" binding:"required,gt=0"`
	UnitPrice types.Money `json:"unitPrice"`
}

// ToEntity converts the request to a domain document.
func (r *CreateSaleRequest) ToEntity(createdBy string) *sale.Sale {
	storeID, _ := id.Parse(r.StoreID)

	doc := sale.New(createdBy, storeID)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.CustomerID != "" {
		customerID, _ := id.Parse(r.CustomerID)
		doc.CustomerID = &customerID
	}
	if r.Status != "" {
		doc.Status = sale.Status(r.Status)
	}
	doc.Discount = r.Discount
	doc.Tax = r.Tax
	doc.PaidAmount = r.PaidAmount
	doc.Notes = r.Notes

	for _, line := range r.Items {
		productID, _ := id.Parse(line.ProductID)
		doc.AddItem(productID, line.Quantity, line.UnitPrice)
	}

	return doc
}

// UpdateSaleRequest replaces a sale header and items.
type UpdateSaleRequest struct {
	Date       *time.Time        `json:"date,omitempty"`
	StoreID    string            `json:"storeId" binding:"required,uuid"`
	CustomerID string            `json:"customerId,omitempty" binding:"omitempty,uuid"`
	Status     string            `json:"status" binding:"required"`
	Discount   types.Money       `json:"discount"`
	Tax        types.Money       `json:"tax"`
	PaidAmount types.Money       `json:"paidAmount"`
	Notes      string            `json:"notes,omitempty"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToEntity converts the request to a domain document with the given ID.
func (r *UpdateSaleRequest) ToEntity(docID id.ID) *sale.Sale {
	storeID, _ := id.Parse(r.StoreID)

	doc := sale.New("", storeID)
	doc.ID = docID
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.CustomerID != "" {
		customerID, _ := id.Parse(r.CustomerID)
		doc.CustomerID = &customerID
	}
	if r.Status != "" {
		doc.Status = sale.Status(r.Status)
	}
	doc.Discount = r.Discount
	doc.Tax = r.Tax
	doc.PaidAmount = r.PaidAmount
	doc.Notes = r.Notes

	for _, line := range r.Items {
		productID, _ := id.Parse(line.ProductID)
		doc.AddItem(productID, line.Quantity, line.UnitPrice)
	}

	return doc
}
