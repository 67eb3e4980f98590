// Package movement validates stock movements before any document mutates
// the inventory ledger. All checks are reads; a failed validation aborts
// the engine with zero side effects.
package movement

import (
	"context"
	"fmt"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/domain/catalogs"
	"stockpilot/internal/domain/registers/inventory"
)

// Line is the product/quantity slice of a document line the validator cares about.
type Line struct {
	ProductID id.ID
	Quantity  int64
}

// Validator checks referential integrity and quantity feasibility.
type Validator struct {
	products  catalogs.ProductRepository
	stores    catalogs.StoreRepository
	vendors   catalogs.VendorRepository
	customers catalogs.CustomerRepository
	ledger    inventory.Repository
}

// NewValidator creates a stock movement validator.
func NewValidator(
	products catalogs.ProductRepository,
	stores catalogs.StoreRepository,
	vendors catalogs.VendorRepository,
	customers catalogs.CustomerRepository,
	ledger inventory.Repository,
) *Validator {
	return &Validator{
		products:  products,
		stores:    stores,
		vendors:   vendors,
		customers: customers,
		ledger:    ledger,
	}
}

// Store confirms the store belongs to the acting company.
func (v *Validator) Store(ctx context.Context, storeID id.ID, companyID string) (*catalogs.Store, error) {
	store, err := v.stores.GetByID(ctx, storeID, companyID)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Vendor confirms the vendor belongs to the acting company.
func (v *Validator) Vendor(ctx context.Context, vendorID id.ID, companyID string) (*catalogs.Vendor, error) {
	return v.vendors.GetByID(ctx, vendorID, companyID)
}

// Customer confirms the customer belongs to the acting company.
func (v *Validator) Customer(ctx context.Context, customerID id.ID, companyID string) (*catalogs.Customer, error) {
	return v.customers.GetByID(ctx, customerID, companyID)
}

// Products confirms every line references a product of the acting company.
func (v *Validator) Products(ctx context.Context, lines []Line, companyID string) error {
	for _, line := range lines {
		ok, err := v.products.Exists(ctx, line.ProductID, companyID)
		if err != nil {
			return fmt.Errorf("check product %s: %w", line.ProductID, err)
		}
		if !ok {
			return apperror.NewNotFound("product", line.ProductID.String())
		}
	}
	return nil
}

// Availability confirms the store holds enough stock for every line.
// This is a pre-check only; the ledger's floor-checked decrement inside the
// engine transaction remains the final authority under concurrency.
func (v *Validator) Availability(ctx context.Context, storeID id.ID, lines []Line) error {
	for _, line := range lines {
		available, err := v.ledger.GetQuantity(ctx, line.ProductID, storeID)
		if err != nil {
			return fmt.Errorf("get quantity for %s: %w", line.ProductID, err)
		}
		if available < line.Quantity {
			return apperror.NewInsufficientStock(line.ProductID.String(), line.Quantity, available)
		}
	}
	return nil
}

// DistinctStores rejects a transfer whose source and destination coincide.
func (v *Validator) DistinctStores(fromStoreID, toStoreID id.ID) error {
	if fromStoreID == toStoreID {
		return apperror.NewInvalidInput("source and destination store must differ").
			WithDetail("store_id", fromStoreID.String())
	}
	return nil
}

// ReturnLines confirms every return line's product was part of the original
// document and its quantity does not exceed the original line quantity.
// originalQty maps product ID to the originally documented quantity.
func (v *Validator) ReturnLines(lines []Line, originalQty map[id.ID]int64) error {
	for _, line := range lines {
		original, ok := originalQty[line.ProductID]
		if !ok {
			return apperror.NewInvalidInput("product was not part of the original document").
				WithDetail("product_id", line.ProductID.String())
		}
		if line.Quantity > original {
			return apperror.NewReturnExceedsOriginal(line.ProductID.String(), line.Quantity, original)
		}
	}
	return nil
}
