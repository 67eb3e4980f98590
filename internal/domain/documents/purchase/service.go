package purchase

import (
	"context"
	"fmt"

	"stockpilot/internal/core/actor"
	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/numerator"
	"stockpilot/internal/core/tx"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/movement"
	"stockpilot/internal/domain/registers/inventory"
	"stockpilot/pkg/logger"
)

// Service is the purchase transaction engine.
// Create runs validate, totals, numbering, header+items persistence and
// inventory increments as one atomic unit; any failure rolls back all of it.
type Service struct {
	repo      Repository
	validator *movement.Validator
	ledger    inventory.Repository
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	validator *movement.Validator,
	ledger inventory.Repository,
	numerator numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		ledger:    ledger,
		numerator: numerator,
		txManager: txManager,
	}
}

// Create creates a purchase and increases inventory at the receiving store.
func (s *Service) Create(ctx context.Context, doc *Purchase, act *actor.Actor) (*Purchase, error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return nil, err
	}

	if doc.Status == "" {
		doc.Status = StatusCompleted
	}
	doc.ComputeTotals()

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.validator.Vendor(ctx, doc.VendorID, companyID); err != nil {
			return err
		}
		store, err := s.validator.Store(ctx, doc.StoreID, companyID)
		if err != nil {
			return err
		}
		if err := s.validator.Products(ctx, doc.MovementLines(), companyID); err != nil {
			return err
		}

		// Purchase numbers carry a store marker and a per-store daily sequence.
		cfg := numerator.DefaultConfig(NumberPrefix).WithStore(store.ID, store.Name)
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

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase created",
		"id", doc.ID,
		"number", doc.Number,
		"total_amount", doc.TotalAmount)

	return s.GetByID(ctx, doc.ID, act)
}

// GetByID retrieves a purchase with items and joined relations.
func (s *Service) GetByID(ctx context.Context, docID id.ID, act *actor.Actor) (*Purchase, error) {
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

// List retrieves purchases with filtering.
func (s *Service) List(ctx context.Context, act *actor.Actor, filter ListFilter) (domain.ListResult[*Purchase], error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return domain.ListResult[*Purchase]{}, err
	}
	return s.repo.List(ctx, companyID, filter)
}

// Update re-validates changed references and wholesale-replaces items with
// recomputed totals. Previously applied inventory deltas are intentionally
// not reconciled; corrections go through return documents.
func (s *Service) Update(ctx context.Context, doc *Purchase, act *actor.Actor) (*Purchase, error) {
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

	doc.ComputeTotals()
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if doc.VendorID != existing.VendorID {
			if _, err := s.validator.Vendor(ctx, doc.VendorID, companyID); err != nil {
				return err
			}
		}
		if doc.StoreID != existing.StoreID {
			if _, err := s.validator.Store(ctx, doc.StoreID, companyID); err != nil {
				return err
			}
		}
		if err := s.validator.Products(ctx, doc.MovementLines(), companyID); err != nil {
			return err
		}

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

// Delete removes a purchase and cascades its items.
// Blocked while purchase returns reference the document. Already applied
// inventory increments are not reversed.
func (s *Service) Delete(ctx context.Context, docID id.ID, act *actor.Actor) error {
	companyID, err := act.RequireCompany()
	if err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, docID, companyID); err != nil {
		return err
	}

	hasReturns, err := s.repo.HasReturns(ctx, docID)
	if err != nil {
		return fmt.Errorf("check returns: %w", err)
	}
	if hasReturns {
		return apperror.NewHasDependentReturns("purchase", docID.String())
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
