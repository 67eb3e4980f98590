// Package purchasereturn provides the PurchaseReturn document: goods
// sent back to the vendor against an originating purchase.
package purchasereturn

import (
	"context"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/entity"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/types"
	"stockpilot/internal/domain/movement"
)

// Status is the purchase return document status.
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

// PurchaseReturn records goods shipped back to a vendor. The store and
// vendor come from the originating purchase; the engine fills them in.
type PurchaseReturn struct {
	entity.Document

	PurchaseID id.ID  `db:"purchase_id" json:"purchaseId"`
	VendorID   id.ID  `db:"vendor_id" json:"vendorId"`
	StoreID    id.ID  `db:"store_id" json:"storeId"`
	Status     Status `db:"status" json:"status"`
	Reason     string `db:"reason" json:"reason,omitempty"`

	// RefundAmount = Σ line totals, recomputed server-side
	RefundAmount types.Money `db:"refund_amount" json:"refundAmount"`

	// Joined display fields (populated by detail/list reads)
	PurchaseNumber string `db:"purchase_number" json:"purchaseNumber,omitempty"`
	VendorName     string `db:"vendor_name" json:"vendorName,omitempty"`
	StoreName      string `db:"store_name" json:"storeName,omitempty"`

	// Table part: returned goods
	Items []Item `db:"-" json:"items"`
}

// Item is one line of a purchase return. UnitPrice is resolved from the
// matching line of the originating purchase.
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

// New creates a new purchase return document.
func New(createdBy string, purchaseID id.ID) *PurchaseReturn {
	return &PurchaseReturn{
		Document:   entity.NewDocument(createdBy),
		PurchaseID: purchaseID,
		Status:     StatusCompleted,
		Items:      make([]Item, 0),
	}
}

// AddItem appends a line. Unit price is filled by the engine from the
// originating purchase.
func (r *PurchaseReturn) AddItem(productID id.ID, quantity int64) {
	r.Items = append(r.Items, Item{
		LineID:    id.New(),
		LineNo:    len(r.Items) + 1,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// ComputeTotals recomputes line totals and the refund aggregate.
func (r *PurchaseReturn) ComputeTotals() {
	refund := types.Zero()
	for i := range r.Items {
		r.Items[i].TotalPrice = types.LineTotal(r.Items[i].UnitPrice, r.Items[i].Quantity)
		refund = refund.Add(r.Items[i].TotalPrice)
	}
	r.RefundAmount = refund
}

// Validate implements entity.Validatable.
func (r *PurchaseReturn) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(r.PurchaseID) {
		return apperror.NewValidation("originating purchase is required").
			WithDetail("field", "purchaseId")
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
func (r *PurchaseReturn) MovementLines() []movement.Line {
	lines := make([]movement.Line, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, movement.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}
