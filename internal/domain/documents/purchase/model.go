// Package purchase provides the Purchase document: goods bought from a
// vendor, received into one store.
package purchase

import (
	"context"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/entity"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/types"
	"stockpilot/internal/domain/movement"
)

// Status is the purchase document status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether the status is a known enum value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Purchase records incoming goods from a vendor into a store.
type Purchase struct {
	entity.Document

	VendorID id.ID  `db:"vendor_id" json:"vendorId"`
	StoreID  id.ID  `db:"store_id" json:"storeId"`
	Status   Status `db:"status" json:"status"`

	// Totals (calculated from items)
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
	PaidAmount  types.Money `db:"paid_amount" json:"paidAmount"`
	DueAmount   types.Money `db:"due_amount" json:"dueAmount"`

	// Joined display fields (populated by detail/list reads)
	VendorName string `db:"vendor_name" json:"vendorName,omitempty"`
	StoreName  string `db:"store_name" json:"storeName,omitempty"`

	// Table part: purchased goods
	Items []Item `db:"-" json:"items"`
}

// Item is one line of a purchase.
type Item struct {
	LineID    id.ID       `db:"line_id" json:"lineId"`
	LineNo    int         `db:"line_no" json:"lineNo"`
	ProductID id.ID       `db:"product_id" json:"productId"`
	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// TotalPrice = Quantity × UnitPrice, recomputed server-side
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`

	// Joined display field
	ProductName string `db:"product_name" json:"productName,omitempty"`
}

// New creates a new purchase document.
func New(createdBy string, vendorID, storeID id.ID) *Purchase {
	return &Purchase{
		Document: entity.NewDocument(createdBy),
		VendorID: vendorID,
		StoreID:  storeID,
		Status:   StatusCompleted,
		Items:    make([]Item, 0),
	}
}

// AddItem appends a line and recomputes totals.
func (p *Purchase) AddItem(productID id.ID, quantity int64, unitPrice types.Money) {
	p.Items = append(p.Items, Item{
		LineID:    id.New(),
		LineNo:    len(p.Items) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	p.ComputeTotals()
}

// ComputeTotals recomputes line totals and header aggregates.
// total_amount = Σ quantity×unit_price; due_amount = total − paid.
func (p *Purchase) ComputeTotals() {
	total := types.Zero()
	for i := range p.Items {
		p.Items[i].TotalPrice = types.LineTotal(p.Items[i].UnitPrice, p.Items[i].Quantity)
		total = total.Add(p.Items[i].TotalPrice)
	}
	p.TotalAmount = total
	p.DueAmount = total.Sub(p.PaidAmount)
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}
	if id.IsNil(p.StoreID) {
		return apperror.NewValidation("store is required").
			WithDetail("field", "storeId")
	}
	if !p.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("status", string(p.Status))
	}
	if len(p.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	for i, item := range p.Items {
		if id.IsNil(item.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price must not be negative").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// MovementLines exposes the items as stock movement lines.
func (p *Purchase) MovementLines() []movement.Line {
	lines := make([]movement.Line, 0, len(p.Items))
	for _, item := range p.Items {
		lines = append(lines, movement.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}
