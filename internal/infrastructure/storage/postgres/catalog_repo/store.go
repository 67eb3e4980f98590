package catalog_repo

import (
	"stockpilot/internal/domain/catalogs"
	"stockpilot/internal/infrastructure/storage/postgres"
)

const storesTable = "cat_stores"

// StoreRepo implements catalogs.StoreRepository.
type StoreRepo struct {
	baseLookup[catalogs.Store]
}

var _ catalogs.StoreRepository = (*StoreRepo)(nil)

// NewStoreRepo creates a store repository.
func NewStoreRepo(txm *postgres.TxManager) *StoreRepo {
	return &StoreRepo{
		baseLookup: newBaseLookup[catalogs.Store](txm, storesTable, "store"),
	}
}
