package catalogs

import (
	"context"
	"time"

	"stockpilot/internal/core/id"
)

// Store is a physical or logical location owned by one company.
// It anchors zero or more inventory rows.
type Store struct {
	ID        id.ID     `db:"id" json:"id"`
	CompanyID string    `db:"company_id" json:"companyId"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// StoreRepository provides tenant-scoped store lookups.
type StoreRepository interface {
	GetByID(ctx context.Context, storeID id.ID, companyID string) (*Store, error)
	Exists(ctx context.Context, storeID id.ID, companyID string) (bool, error)
}
