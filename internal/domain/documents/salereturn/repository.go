package salereturn

import (
	"context"

	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
)

// Repository defines persistence for sale return documents.
// All reads are tenant-scoped through the store relation.
type Repository interface {
	Create(ctx context.Context, doc *SaleReturn) error
	GetByID(ctx context.Context, docID id.ID, companyID string) (*SaleReturn, error)
	Update(ctx context.Context, doc *SaleReturn) error
	Delete(ctx context.Context, docID id.ID) error

	// Item operations
	GetItems(ctx context.Context, docID id.ID) ([]Item, error)
	SaveItems(ctx context.Context, docID id.ID, items []Item) error
	DeleteItems(ctx context.Context, docID id.ID) error

	// List retrieves sale returns with joined sale/customer/store names.
	List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[*SaleReturn], error)
}

// ListFilter for filtering sale returns.
type ListFilter struct {
	domain.ListFilter

	SaleID     *id.ID
	CustomerID *id.ID
	StoreID    *id.ID
	Status     *Status
}
