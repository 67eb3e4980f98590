package purchasereturn

import (
	"context"

	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
)

// Repository defines persistence for purchase return documents.
// All reads are tenant-scoped through the vendor/store relation.
type Repository interface {
	Create(ctx context.Context, doc *PurchaseReturn) error
	GetByID(ctx context.Context, docID id.ID, companyID string) (*PurchaseReturn, error)
	Update(ctx context.Context, doc *PurchaseReturn) error
	Delete(ctx context.Context, docID id.ID) error

	// Item operations
	GetItems(ctx context.Context, docID id.ID) ([]Item, error)
	SaveItems(ctx context.Context, docID id.ID, items []Item) error
	DeleteItems(ctx context.Context, docID id.ID) error

	// List retrieves purchase returns with joined purchase/vendor/store names.
	List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[*PurchaseReturn], error)
}

// ListFilter for filtering purchase returns.
type ListFilter struct {
	domain.ListFilter

	PurchaseID *id.ID
	VendorID   *id.ID
	StoreID    *id.ID
	Status     *Status
}
