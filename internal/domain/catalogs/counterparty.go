package catalogs

import (
	"context"
	"time"

	"stockpilot/internal/core/id"
)

// Vendor is a supplier a company purchases from.
type Vendor struct {
	ID        id.ID     `db:"id" json:"id"`
	CompanyID string    `db:"company_id" json:"companyId"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Customer is a buyer a company sells to.
type Customer struct {
	ID        id.ID     `db:"id" json:"id"`
	CompanyID string    `db:"company_id" json:"companyId"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// VendorRepository provides tenant-scoped vendor lookups.
type VendorRepository interface {
	GetByID(ctx context.Context, vendorID id.ID, companyID string) (*Vendor, error)
	Exists(ctx context.Context, vendorID id.ID, companyID string) (bool, error)
}

// CustomerRepository provides tenant-scoped customer lookups.
type CustomerRepository interface {
	GetByID(ctx context.Context, customerID id.ID, companyID string) (*Customer, error)
	Exists(ctx context.Context, customerID id.ID, companyID string) (bool, error)
}
