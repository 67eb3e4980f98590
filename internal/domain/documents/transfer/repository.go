package transfer

import (
	"context"

	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
)

// Repository defines persistence for transfer documents.
// All reads are tenant-scoped through the store relation.
type Repository interface {
	Create(ctx context.Context, doc *Transfer) error
	GetByID(ctx context.Context, docID id.ID, companyID string) (*Transfer, error)
	Update(ctx context.Context, doc *Transfer) error
	Delete(ctx context.Context, docID id.ID) error

	// Item operations
	GetItems(ctx context.Context, docID id.ID) ([]Item, error)
	SaveItems(ctx context.Context, docID id.ID, items []Item) error
	DeleteItems(ctx context.Context, docID id.ID) error

	// List retrieves transfers with joined store names.
	List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[*Transfer], error)
}

// ListFilter for filtering transfers.
type ListFilter struct {
	domain.ListFilter

	FromStoreID *id.ID
	ToStoreID   *id.ID
	Status      *Status
}
