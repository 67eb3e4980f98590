package catalog_repo

import (
	"stockpilot/internal/domain/catalogs"
	"stockpilot/internal/infrastructure/storage/postgres"
)

const productsTable = "cat_products"

// ProductRepo implements catalogs.ProductRepository.
type ProductRepo struct {
	baseLookup[catalogs.Product]
}

var _ catalogs.ProductRepository = (*ProductRepo)(nil)

// NewProductRepo creates a product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		baseLookup: newBaseLookup[catalogs.Product](txm, productsTable, "product"),
	}
}
