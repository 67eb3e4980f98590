// Package salereturn provides the SaleReturn document: goods accepted
// back from a customer against an originating sale.
package salereturn

import (
	"context"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/entity"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/types"
	"stockpilot/internal/domain/movement"
)

// Status is the sale return document status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
)

// Valid reports whether the status is a known enum value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// SaleReturn records goods taken back into a store. The store and
// customer come from the originating sale; the engine fills them in.
type SaleReturn struct {
	entity.Document

	SaleID     id.ID  `db:"sale_id" json:"saleId"`
	StoreID    id.ID  `db:"store_id" json:"storeId"`
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`
	Status     Status `db:"status" json:"status"`
	Reason     string `db:"reason" json:"reason,omitempty"`

	// RefundAmount = Σ line totals, recomputed server-side
	RefundAmount types.Money `db:"refund_amount" json:"refundAmount"`

	// Joined display fields (populated by detail/list reads)
	SaleNumber   string `db:"sale_number" json:"saleNumber,omitempty"`
	CustomerName string `db:"customer_name" json:"customerName,omitempty"`
	StoreName    string `db:"store_name" json:"storeName,omitempty"`

	// Table part: returned goods
	Items []Item `db:"-" json:"items"`
}

// Item is one line of a sale return. UnitPrice is resolved from the
// matching line of the originating sale.
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

// New creates a new sale return document.
func New(createdBy string, saleID id.ID) *SaleReturn {
	return &SaleReturn{
		Document: entity.NewDocument(createdBy),
		SaleID:   saleID,
		Status:   StatusCompleted,
		Items:    make([]Item, 0),
	}
}

// AddItem appends a line. Unit price is filled by the engine from the
// originating sale.
func (r *SaleReturn) AddItem(productID id.ID, quantity int64) {
	r.Items = append(r.Items, Item{
		LineID:    id.New(),
		LineNo:    len(r.Items) + 1,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// ComputeTotals recomputes line totals and the refund aggregate.
func (r *SaleReturn) ComputeTotals() {
	refund := types.Zero()
	for i := range r.Items {
		r.Items[i].TotalPrice = types.LineTotal(r.Items[i].UnitPrice, r.Items[i].Quantity)
		refund = refund.Add(r.Items[i].TotalPrice)
	}
	r.RefundAmount = refund
}

// Validate implements entity.Validatable.
func (r *SaleReturn) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(r.SaleID) {
		return apperror.NewValidation("originating sale is required").
			WithDetail("field", "saleId")
	}
	if id.IsNil(r.StoreID) {
		return apperror.NewValidation("store is required").
			WithDetail("field", "storeId")
	}
	if !r.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("status", string(r.Status))
	}
	if len(r.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	for i, item := range r.Items {
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
	}

	return nil
}

// MovementLines exposes the items as stock movement lines.
func (r *SaleReturn) MovementLines() []movement.Line {
	lines := make([]movement.Line, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, movement.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}
