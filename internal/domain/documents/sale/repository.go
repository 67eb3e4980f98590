package sale

import (
	"context"

	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
)

// Repository defines persistence for sale documents.
type Repository interface {
	Create(ctx context.Context, doc *Sale) error
	GetByID(ctx context.Context, docID id.ID, companyID string) (*Sale, error)
	Update(ctx context.Context, doc *Sale) error
	Delete(ctx context.Context, docID id.ID) error

	GetItems(ctx context.Context, docID id.ID) ([]Item, error)
	SaveItems(ctx context.Context, docID id.ID, items []Item) error
	DeleteItems(ctx context.Context, docID id.ID) error

	List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[*Sale], error)

	// HasReturns reports whether sale returns reference this document.
	HasReturns(ctx context.Context, docID id.ID) (bool, error)

	// SetStatus updates only the status column. Used by the sale return
	// engine to mark the originating sale RETURNED.
	SetStatus(ctx context.Context, docID id.ID, status Status) error
}

// ListFilter for filtering sales.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	StoreID    *id.ID
	Status     *Status
}
