// Package transfer provides the Transfer document: goods moved between
// two stores of the same company. Transfers carry no pricing.
package transfer

import (
	"context"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/entity"
	"stockpilot/internal/core/id"
	"stockpilot/internal/domain/movement"
)

// Status is the transfer document status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusInTransit Status = "IN_TRANSIT"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether the status is a known enum value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Transfer moves goods from one store to another.
type Transfer struct {
	entity.Document

	FromStoreID id.ID  `db:"from_store_id" json:"fromStoreId"`
	ToStoreID   id.ID  `db:"to_store_id" json:"toStoreId"`
	Status      Status `db:"status" json:"status"`

	// Joined display fields
	FromStoreName string `db:"from_store_name" json:"fromStoreName,omitempty"`
	ToStoreName   string `db:"to_store_name" json:"toStoreName,omitempty"`

	Items []Item `db:"-" json:"items"`
}

// Item is one line of a transfer: product and quantity only.
type Item struct {
	LineID    id.ID `db:"line_id" json:"lineId"`
	LineNo    int   `db:"line_no" json:"lineNo"`
	ProductID id.ID `db:"product_id" json:"productId"`
	Quantity  int64 `db:"quantity" json:"quantity"`

	ProductName string `db:"product_name" json:"productName,omitempty"`
}

// New creates a new transfer document.
func New(createdBy string, fromStoreID, toStoreID id.ID) *Transfer {
	return &Transfer{
		Document:    entity.NewDocument(createdBy),
		FromStoreID: fromStoreID,
		ToStoreID:   toStoreID,
		Status:      StatusCompleted,
		Items:       make([]Item, 0),
	}
}

// AddItem appends a line.
func (t *Transfer) AddItem(productID id.ID, quantity int64) {
	t.Items = append(t.Items, Item{
		LineID:    id.New(),
		LineNo:    len(t.Items) + 1,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// Validate implements entity.Validatable.
func (t *Transfer) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(t.FromStoreID) {
		return apperror.NewValidation("source store is required").
			WithDetail("field", "fromStoreId")
	}
	if id.IsNil(t.ToStoreID) {
		return apperror.NewValidation("destination store is required").
			WithDetail("field", "toStoreId")
	}
	if t.FromStoreID == t.ToStoreID {
		return apperror.NewInvalidInput("source and destination store must differ").
			WithDetail("store_id", t.FromStoreID.String())
	}
	if !t.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("status", string(t.Status))
	}
	if len(t.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	for i, item := range t.Items {
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
func (t *Transfer) MovementLines() []movement.Line {
	lines := make([]movement.Line, 0, len(t.Items))
	for _, item := range t.Items {
		lines = append(lines, movement.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}
