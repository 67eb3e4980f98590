// Package sale provides the Sale document: goods sold out of one store,
// optionally to a known customer.
package sale

import (
	"context"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/entity"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/types"
	"stockpilot/internal/domain/movement"
)

// Status is the sale document status.
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusReturned  Status = "RETURNED"
)

// Valid reports whether the status is a known enum value.
func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// Sale records outgoing goods from a store.
// CustomerID is nil for anonymous counter sales.
type Sale struct {
	entity.Document

	StoreID    id.ID  `db:"store_id" json:"storeId"`
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`
	Status     Status `db:"status" json:"status"`

	// Totals: total_amount = subtotal − discount + tax; due = total − paid.
	Subtotal    types.Money `db:"subtotal" json:"subtotal"`
	Discount    types.Money `db:"discount" json:"discount"`
	Tax         types.Money `db:"tax" json:"tax"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
	PaidAmount  types.Money `db:"paid_amount" json:"paidAmount"`
	DueAmount   types.Money `db:"due_amount" json:"dueAmount"`

	// Joined display fields
	CustomerName string `db:"customer_name" json:"customerName,omitempty"`
	StoreName    string `db:"store_name" json:"storeName,omitempty"`

	Items []Item `db:"-" json:"items"`
}

// Item is one line of a sale.
type Item struct {
	LineID     id.ID       `db:"line_id" json:"lineId"`
	LineNo     int         `db:"line_no" json:"lineNo"`
	ProductID  id.ID       `db:"product_id" json:"productId"`
	Quantity   int64       `db:"quantity" json:"quantity"`
	UnitPrice  types.Money `db:"unit_price" json:"unitPrice"`
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`

	ProductName string `db:"product_name" json:"productName,omitempty"`
}

// New creates a new sale document.
func New(createdBy string, storeID id.ID) *Sale {
	return &Sale{
		Document: entity.NewDocument(createdBy),
		StoreID:  storeID,
		Status:   StatusCompleted,
		Items:    make([]Item, 0),
	}
}

// AddItem appends a line and recomputes totals.
func (s *Sale) AddItem(productID id.ID, quantity int64, unitPrice types.Money) {
	s.Items = append(s.Items, Item{
		LineID:    id.New(),
		LineNo:    len(s.Items) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	s.ComputeTotals()
}

// ComputeTotals recomputes line totals and header aggregates.
func (s *Sale) ComputeTotals() {
	subtotal := types.Zero()
	for i := range s.Items {
		s.Items[i].TotalPrice = types.LineTotal(s.Items[i].UnitPrice, s.Items[i].Quantity)
		subtotal = subtotal.Add(s.Items[i].TotalPrice)
	}
	s.Subtotal = subtotal
	s.TotalAmount = subtotal.Sub(s.Discount).Add(s.Tax)
	s.DueAmount = s.TotalAmount.Sub(s.PaidAmount)
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.StoreID) {
		return apperror.NewValidation("store is required").
			WithDetail("field", "storeId")
	}
	if !s.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("status", string(s.Status))
	}
	if s.Discount.IsNegative() || s.Tax.IsNegative() {
		return apperror.NewValidation("discount and tax must not be negative")
	}
	if len(s.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	for i, item := range s.Items {
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
func (s *Sale) MovementLines() []movement.Line {
	lines := make([]movement.Line, 0, len(s.Items))
	for _, item := range s.Items {
		lines = append(lines, movement.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}
