package salereturn

import (
	"context"
	"fmt"

	"stockpilot/internal/core/actor"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/numerator"
	"stockpilot/internal/core/tx"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/documents/sale"
	"stockpilot/internal/domain/movement"
	"stockpilot/internal/domain/registers/inventory"
	"stockpilot/pkg/logger"
)

// Service is the sale return transaction engine.
// A return references an originating sale: the customer, store and line
// prices are resolved from it, and every return line must match an
// original line with quantity not exceeding it. Accepted goods go back
// on hand, so no availability check applies.
type Service struct {
	repo      Repository
	sales     sale.Repository
	validator *movement.Validator
	ledger    inventory.Repository
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new sale return service.
func NewService(
	repo Repository,
	sales sale.Repository,
	validator *movement.Validator,
	ledger inventory.Repository,
	numerator numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		sales:     sales,
		validator: validator,
		ledger:    ledger,
		numerator: numerator,
		txManager: txManager,
	}
}

// Create creates a sale return, increases inventory at the store the
// goods come back to, and marks the originating sale RETURNED.
func (s *Service) Create(ctx context.Context, doc *SaleReturn, act *actor.Actor) (*SaleReturn, error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return nil, err
	}

	original, err := s.sales.GetByID(ctx, doc.SaleID, companyID)
	if err != nil {
		return nil, err
	}
	originalItems, err := s.sales.GetItems(ctx, doc.SaleID)
	if err != nil {
		return nil, fmt.Errorf("get original items: %w", err)
	}

	// Customer, store and unit prices always come from the original.
	doc.StoreID = original.StoreID
	doc.CustomerID = original.CustomerID
	originalQty := make(map[id.ID]int64, len(originalItems))
	prices := make(map[id.ID]sale.Item, len(originalItems))
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
			if err := s.ledger.Increase(ctx, item.ProductID, doc.StoreID, item.Quantity); err != nil {
				return fmt.Errorf("increase inventory: %w", err)
			}
		}

		if err := s.sales.SetStatus(ctx, doc.SaleID, sale.StatusReturned); err != nil {
			return fmt.Errorf("mark sale returned: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale return created",
		"id", doc.ID,
		"number", doc.Number,
		"sale_id", doc.SaleID,
		"refund_amount", doc.RefundAmount)

	return s.GetByID(ctx, doc.ID, act)
}

// GetByID retrieves a sale return with items and joined relations.
func (s *Service) GetByID(ctx context.Context, docID id.ID, act *actor.Actor) (*SaleReturn, error) {
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

// List retrieves sale returns with filtering.
func (s *Service) List(ctx context.Context, act *actor.Actor, filter ListFilter) (domain.ListResult[*SaleReturn], error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return domain.ListResult[*SaleReturn]{}, err
	}
	return s.repo.List(ctx, companyID, filter)
}

// Update re-validates return lines against the original sale and
// wholesale-replaces items with recomputed totals. Previously applied
// inventory deltas are intentionally not reconciled.
func (s *Service) Update(ctx context.Context, doc *SaleReturn, act *actor.Actor) (*SaleReturn, error) {
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

	// The originating sale is immutable on a return.
	doc.SaleID = existing.SaleID
	doc.StoreID = existing.StoreID
	doc.CustomerID = existing.CustomerID

	originalItems, err := s.sales.GetItems(ctx, doc.SaleID)
	if err != nil {
		return nil, fmt.Errorf("get original items: %w", err)
	}
	originalQty := make(map[id.ID]int64, len(originalItems))
	prices := make(map[id.ID]sale.Item, len(originalItems))
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

// Delete removes a sale return and cascades its items.
// Already applied inventory increments are not reversed.
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
