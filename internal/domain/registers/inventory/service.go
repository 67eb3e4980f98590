package inventory

import (
	"context"
	"fmt"

	"stockpilot/internal/core/actor"
	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/tx"
	"stockpilot/internal/domain"
	"stockpilot/pkg/logger"
)

// Service exposes ledger reads and manual adjustments.
// Document-driven mutations never go through here; they run inside the
// owning document engine's transaction against the Repository directly.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new inventory service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Get returns one ledger row with joined product/store fields.
func (s *Service) Get(ctx context.Context, rowID id.ID, act *actor.Actor) (Row, error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return Row{}, err
	}
	return s.repo.GetByID(ctx, rowID, companyID)
}

// List returns the company's ledger rows.
func (s *Service) List(ctx context.Context, act *actor.Actor, filter ListFilter) (domain.ListResult[Row], error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return domain.ListResult[Row]{}, err
	}
	return s.repo.List(ctx, companyID, filter)
}

// ListLowStock returns rows at or below the product's reorder level.
func (s *Service) ListLowStock(ctx context.Context, act *actor.Actor, filter ListFilter) (domain.ListResult[Row], error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return domain.ListResult[Row]{}, err
	}
	return s.repo.ListLowStock(ctx, companyID, filter)
}

// Adjust applies a signed manual correction to one row.
// The floor check reuses the row lock so a concurrent document cannot
// drive the result negative between read and write.
func (s *Service) Adjust(ctx context.Context, rowID id.ID, adjustment int64, act *actor.Actor) (Row, error) {
	companyID, err := act.RequireCompany()
	if err != nil {
		return Row{}, err
	}

	row, err := s.repo.GetByID(ctx, rowID, companyID)
	if err != nil {
		return Row{}, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.repo.GetForUpdate(ctx, row.ProductID, row.StoreID)
		if err != nil {
			return fmt.Errorf("lock inventory row: %w", err)
		}

		newQuantity := locked.Quantity + adjustment
		if newQuantity < 0 {
			return apperror.NewInvalidInput("adjustment would result in negative inventory").
				WithDetail("available", locked.Quantity).
				WithDetail("adjustment", adjustment)
		}

		return s.repo.SetQuantity(ctx, rowID, newQuantity)
	})
	if err != nil {
		return Row{}, err
	}

	logger.Info(ctx, "inventory adjusted",
		"inventory_id", rowID,
		"adjustment", adjustment)

	return s.repo.GetByID(ctx, rowID, companyID)
}
