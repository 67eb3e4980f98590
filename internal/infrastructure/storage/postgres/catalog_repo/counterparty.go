package catalog_repo

import (
	"stockpilot/internal/domain/catalogs"
	"stockpilot/internal/infrastructure/storage/postgres"
)

const (
	vendorsTable   = "cat_vendors"
	customersTable = "cat_customers"
)

// VendorRepo implements catalogs.VendorRepository.
type VendorRepo struct {
	baseLookup[catalogs.Vendor]
}

var _ catalogs.VendorRepository = (*VendorRepo)(nil)

// NewVendorRepo creates a vendor repository.
func NewVendorRepo(txm *postgres.TxManager) *VendorRepo {
	return &VendorRepo{
		baseLookup: newBaseLookup[catalogs.Vendor](txm, vendorsTable, "vendor"),
	}
}

// CustomerRepo implements catalogs.CustomerRepository.
type CustomerRepo struct {
	baseLookup[catalogs.Customer]
}

var _ catalogs.CustomerRepository = (*CustomerRepo)(nil)

// NewCustomerRepo creates a customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		baseLookup: newBaseLookup[catalogs.Customer](txm, customersTable, "customer"),
	}
}
