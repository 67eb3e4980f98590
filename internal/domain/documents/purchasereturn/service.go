package purchasereturn

import (
	"context"
	"fmt"

	"stockpilot/internal/core/actor"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/numerator"
	"stockpilot/internal/core/tx"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/documents/purchase"
	"stockpilot/internal/domain/movement"
	"stockpilot/internal/domain/registers/inventory"
	"stockpilot/pkg/logger"
)

// Service is the purchase return transaction engine.
// A return references an originating purchase: the vendor, store and line
// prices are resolved from it, every return line must match an original
// line with quantity not exceeding it, and the store must still hold
// enough stock to send the goods back.
type Service struct {
	repo      Repository
	purchases purchase.Repository
	validator *movement.Validator
	ledger    inventory.Repository
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new purchase return service.
func NewService(
	repo Repository,
	purchases purchase.Repository,
	validator *movement.Validator,
	ledger inventory.Repository,
	numerator numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		purchases: purchases,
		validator: validator,
		ledger:    ledger,
		numerator: numerator,
		txManager: txManager,
	}
}

// Create creates a purchase return and decreases inventory at the store
// the goods leave from.
func (s *Service) Create(ctx context.Context, doc *PurchaseReturn, act *actor.Actor) (*PurchaseReturn, error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return nil, err
	}

	original, err := s.purchases.GetByID(ctx, doc.PurchaseID, companyID)
	if err != nil {
		return nil, err
	}
	originalItems, err := s.purchases.GetItems(ctx, doc.PurchaseID)
	if err != nil {
		return nil, fmt.Errorf("get original items: %w", err)
	}

	// Vendor, store and unit prices always come from the original.
	doc.VendorID = original.VendorID
	doc.StoreID = original.StoreID
	originalQty := make(map[id.ID]int64, len(originalItems))
	prices := make(map[id.ID]purchase.Item, len(originalItems))
	for _, item := range originalItems {
		originalQty[item.ProductID] += item.Quantity
		prices[item.ProductID] = item
	}

	if err := s.validator.ReturnLines(doc.MovementLines(), originalQty); err != nil {
		return nil, err
	}
	for i := range doc.Items {
		doc.Items[i].UnitPrice = prices[doc.Items[i].ProductID].UnitPrice
	}

	if doc.Status == "" {
		doc.Status = StatusCompleted
	}
	doc.ComputeTotals()

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Goods must still be on hand to be sent back.
		if err := s.validator.Availability(ctx, doc.StoreID, doc.MovementLines()); err != nil {
			return err
		}

		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.NextNumber(ctx, cfg, doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveItems(ctx, doc.ID, doc.Items); err != nil {
			return fmt.Errorf("save items: %w", err)
		}

		for _, item := range doc.Items {
			if err := s.ledger.Decrease(ctx, item.ProductID, doc.StoreID, item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase return created",
		"id", doc.ID,
		"number", doc.Number,
		"purchase_id", doc.PurchaseID,
		"refund_amount", doc.RefundAmount)

	return s.GetByID(ctx, doc.ID, act)
}

// GetByID retrieves a purchase return with items and joined relations.
func (s *Service) GetByID(ctx context.Context, docID id.ID, act *actor.Actor) (*PurchaseReturn, error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return nil, err
	}

	doc, err := s.repo.GetByID(ctx, docID, companyID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	doc.Items = items

	return doc, nil
}

// List retrieves purchase returns with filtering.
func (s *Service) List(ctx context.Context, act *actor.Actor, filter ListFilter) (domain.ListResult[*PurchaseReturn], error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return domain.ListResult[*PurchaseReturn]{}, err
	}
	return s.repo.List(ctx, companyID, filter)
}

// Update re-validates return lines against the original purchase and
// wholesale-replaces items with recomputed totals. Previously applied
// inventory deltas are intentionally not reconciled.
func (s *Service) Update(ctx context.Context, doc *PurchaseReturn, act *actor.Actor) (*PurchaseReturn, error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, doc.ID, companyID)
	if err != nil {
		return nil, err
	}
	doc.Number = existing.Number
	doc.Version = existing.Version
	doc.CreatedBy = existing.CreatedBy
	doc.CreatedAt = existing.CreatedAt

	// The originating purchase is immutable on a return.
	doc.PurchaseID = existing.PurchaseID
	doc.VendorID = existing.VendorID
	doc.StoreID = existing.StoreID

	originalItems, err := s.purchases.GetItems(ctx, doc.PurchaseID)
	if err != nil {
		return nil, fmt.Errorf("get original items: %w", err)
	}
	originalQty := make(map[id.ID]int64, len(originalItems))
	prices := make(map[id.ID]purchase.Item, len(originalItems))
	for _, item := range originalItems {
		originalQty[item.ProductID] += item.Quantity
		prices[item.ProductID] = item
	}
	if err := s.validator.ReturnLines(doc.MovementLines(), originalQty); err != nil {
		return nil, err
	}
	for i := range doc.Items {
		doc.Items[i].UnitPrice = prices[doc.Items[i].ProductID].UnitPrice
	}

	doc.ComputeTotals()
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveItems(ctx, doc.ID, doc.Items); err != nil {
			return fmt.Errorf("save items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, doc.ID, act)
}

// Delete removes a purchase return and cascades its items.
// Already applied inventory decrements are not reversed.
func (s *Service) Delete(ctx context.Context, docID id.ID, act *actor.Actor) error {
	companyID, err := act.RequireCompany()
	if err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, docID, companyID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteItems(ctx, docID); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if err := s.repo.Delete(ctx, docID); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		return nil
	})
}
