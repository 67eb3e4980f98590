package purchase

import (
	"context"

	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
)

// Repository defines persistence for purchase documents.
// All reads are tenant-scoped through the vendor/store relation.
type Repository interface {
	Create(ctx context.Context, doc *Purchase) error
	GetByID(ctx context.Context, docID id.ID, companyID string) (*Purchase, error)
	Update(ctx context.Context, doc *Purchase) error
	Delete(ctx context.Context, docID id.ID) error

	// Item operations
	GetItems(ctx context.Context, docID id.ID) ([]Item, error)
	SaveItems(ctx context.Context, docID id.ID, items []Item) error
	DeleteItems(ctx context.Context, docID id.ID) error

	// List retrieves purchases with joined vendor/store names.
	List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[*Purchase], error)

	// HasReturns reports whether purchase returns reference this document.
	HasReturns(ctx context.Context, docID id.ID) (bool, error)
}

// ListFilter for filtering purchases.
type ListFilter struct {
	domain.ListFilter

	VendorID *id.ID
	StoreID  *id.ID
	Status   *Status
}
