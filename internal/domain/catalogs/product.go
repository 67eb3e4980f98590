// Package catalogs provides reference data looked up by the document
// engine: products, stores, vendors and customers. Their CRUD lives
// outside the core; the engine only needs tenant-scoped reads.
package catalogs

import (
	"context"
	"time"

	"stockpilot/internal/core/id"
	"stockpilot/internal/core/types"
)

// Product is a sellable item owned by one company.
type Product struct {
	ID           id.ID       `db:"id" json:"id"`
	CompanyID    string      `db:"company_id" json:"companyId"`
	Name         string      `db:"name" json:"name"`
	SKU          string      `db:"sku" json:"sku,omitempty"`
	Unit         string      `db:"unit" json:"unit,omitempty"`
	CostPrice    types.Money `db:"cost_price" json:"costPrice"`
	SellingPrice types.Money `db:"selling_price" json:"sellingPrice"`
	ReorderLevel int64       `db:"reorder_level" json:"reorderLevel"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}

// ProductRepository provides tenant-scoped product lookups.
type ProductRepository interface {
	// GetByID returns the product when it belongs to the company.
	GetByID(ctx context.Context, productID id.ID, companyID string) (*Product, error)

	// Exists reports whether the product belongs to the company.
	Exists(ctx context.Context, productID id.ID, companyID string) (bool, error)
}
