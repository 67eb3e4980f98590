package sale

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

// Service is the sale transaction engine.
type Service struct {
	repo      Repository
	validator *movement.Validator
	ledger    inventory.Repository
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new sale service.
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

// Create creates a sale and decreases inventory at the selling store.
// The floor-checked decrement inside the transaction guarantees two
// concurrent sales of the same product cannot both pass a point where the
// combined quantity would drive the ledger negative.
func (s *Service) Create(ctx context.Context, doc *Sale, act *actor.Actor) (*Sale, error) {
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
		if doc.CustomerID != nil {
			if _, err := s.validator.Customer(ctx, *doc.CustomerID, companyID); err != nil {
				return err
			}
		}
		if _, err := s.validator.Store(ctx, doc.StoreID, companyID); err != nil {
			return err
		}
		if err := s.validator.Products(ctx, doc.MovementLines(), companyID); err != nil {
			return err
		}
		if err := s.validator.Availability(ctx, doc.StoreID, doc.MovementLines()); err != nil {
			return err
		}

		number, err := s.numerator.NextNumber(ctx, numerator.DefaultConfig(NumberPrefix), doc.Date)
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
				return fmt.Errorf("decrease inventory: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale created",
		"id", doc.ID,
		"number", doc.Number,
		"total_amount", doc.TotalAmount)

	return s.GetByID(ctx, doc.ID, act)
}

// GetByID retrieves a sale with items and joined relations.
func (s *Service) GetByID(ctx context.Context, docID id.ID, act *actor.Actor) (*Sale, error) {
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

// List retrieves sales with filtering.
func (s *Service) List(ctx context.Context, act *actor.Actor, filter ListFilter) (domain.ListResult[*Sale], error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return domain.ListResult[*Sale]{}, err
	}
	return s.repo.List(ctx, companyID, filter)
}

// Update re-validates changed references and wholesale-replaces items with
// recomputed totals. Applied inventory deltas are not reconciled.
func (s *Service) Update(ctx context.Context, doc *Sale, act *actor.Actor) (*Sale, error) {
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
		if doc.CustomerID != nil {
			if _, err := s.validator.Customer(ctx, *doc.CustomerID, companyID); err != nil {
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

// Delete removes a sale and cascades its items.
// Blocked while sale returns reference the document.
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
		return apperror.NewHasDependentReturns("sale", docID.String())
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
