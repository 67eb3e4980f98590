// Package inventory provides the per-(product, store) quantity-on-hand
// ledger. Rows are created lazily on the first stock-affecting event and
// quantity never goes below zero.
package inventory

import (
	"time"

	"stockpilot/internal/core/id"
)

// Row is one ledger entry: quantity on hand for a product at a store.
type Row struct {
	ID          id.ID     `db:"id" json:"id"`
	ProductID   id.ID     `db:"product_id" json:"productId"`
	StoreID     id.ID     `db:"store_id" json:"storeId"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	LastUpdated time.Time `db:"last_updated" json:"lastUpdated"`

	// Joined display fields (populated by list/detail reads)
	ProductName  string `db:"product_name" json:"productName,omitempty"`
	StoreName    string `db:"store_name" json:"storeName,omitempty"`
	ReorderLevel int64  `db:"reorder_level" json:"reorderLevel,omitempty"`
}
