package transfer

import (
	"context"
	"fmt"

	"stockpilot/internal/core/actor"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/numerator"
	"stockpilot/internal/core/tx"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/movement"
	"stockpilot/internal/domain/registers/inventory"
	"stockpilot/pkg/logger"
)

// Service is the transfer transaction engine.
// Create moves stock out of the source store and into the destination as
// one atomic unit; the floor-checked decrement at the source guarantees a
// transfer can never drive a store negative under concurrent writers.
type Service struct {
	repo      Repository
	validator *movement.Validator
	ledger    inventory.Repository
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new transfer service.
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

// Create creates a transfer and moves stock between the two stores.
func (s *Service) Create(ctx context.Context, doc *Transfer, act *actor.Actor) (*Transfer, error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return nil, err
	}

	if doc.Status == "" {
		doc.Status = StatusCompleted
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.validator.DistinctStores(doc.FromStoreID, doc.ToStoreID); err != nil {
			return err
		}
		if _, err := s.validator.Store(ctx, doc.FromStoreID, companyID); err != nil {
			return err
		}
		if _, err := s.validator.Store(ctx, doc.ToStoreID, companyID); err != nil {
			return err
		}
		if err := s.validator.Products(ctx, doc.MovementLines(), companyID); err != nil {
			return err
		}
		if err := s.validator.Availability(ctx, doc.FromStoreID, doc.MovementLines()); err != nil {
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
			if err := s.ledger.Decrease(ctx, item.ProductID, doc.FromStoreID, item.Quantity); err != nil {
				return err
			}
			if err := s.ledger.Increase(ctx, item.ProductID, doc.ToStoreID, item.Quantity); err != nil {
				return fmt.Errorf("increase inventory: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "transfer created",
		"id", doc.ID,
		"number", doc.Number,
		"from_store", doc.FromStoreID,
		"to_store", doc.ToStoreID)

	return s.GetByID(ctx, doc.ID, act)
}

// GetByID retrieves a transfer with items and joined relations.
func (s *Service) GetByID(ctx context.Context, docID id.ID, act *actor.Actor) (*Transfer, error) {
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

// List retrieves transfers with filtering.
func (s *Service) List(ctx context.Context, act *actor.Actor, filter ListFilter) (domain.ListResult[*Transfer], error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return domain.ListResult[*Transfer]{}, err
	}
	return s.repo.List(ctx, companyID, filter)
}

// Update re-validates changed stores and wholesale-replaces items.
// Previously applied inventory deltas are intentionally not reconciled;
// corrections go through a compensating transfer.
func (s *Service) Update(ctx context.Context, doc *Transfer, act *actor.Actor) (*Transfer, error) {
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

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.validator.DistinctStores(doc.FromStoreID, doc.ToStoreID); err != nil {
			return err
		}
		if doc.FromStoreID != existing.FromStoreID {
			if _, err := s.validator.Store(ctx, doc.FromStoreID, companyID); err != nil {
				return err
			}
		}
		if doc.ToStoreID != existing.ToStoreID {
			if _, err := s.validator.Store(ctx, doc.ToStoreID, companyID); err != nil {
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

// Delete removes a transfer and cascades its items.
// Already applied inventory movements are not reversed.
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
