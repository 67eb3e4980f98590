package inventory

import (
	"context"

	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
)

// Repository defines operations for the inventory ledger.
//
// Increase and Decrease are only called from inside a document engine
// transaction; the floor check in Decrease is the single authority for the
// non-negative invariant under concurrent writers.
type Repository interface {
	// GetQuantity returns quantity on hand, 0 when no row exists.
	GetQuantity(ctx context.Context, productID, storeID id.ID) (int64, error)

	// GetForUpdate returns the row with a pessimistic lock, creating no row.
	// Absent rows come back with Quantity 0.
	GetForUpdate(ctx context.Context, productID, storeID id.ID) (Row, error)

	// Increase adds delta (>0), lazily creating the row.
	Increase(ctx context.Context, productID, storeID id.ID, delta int64) error

	// Decrease subtracts delta (>0) and fails with InsufficientStock when
	// the result would be negative. The check and the write are one atomic
	// statement so two concurrent decrements serialize on the row.
	Decrease(ctx context.Context, productID, storeID id.ID, delta int64) error

	// GetByID returns a row with joined product/store fields.
	GetByID(ctx context.Context, rowID id.ID, companyID string) (Row, error)

	// List returns ledger rows for a company with joined display fields.
	List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[Row], error)

	// ListLowStock returns rows at or below the product's reorder level.
	ListLowStock(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[Row], error)

	// SetQuantity overwrites quantity for an existing row (manual adjustment).
	SetQuantity(ctx context.Context, rowID id.ID, quantity int64) error
}

// ListFilter narrows inventory listings.
type ListFilter struct {
	domain.ListFilter

	ProductID *id.ID
	StoreID   *id.ID
}
