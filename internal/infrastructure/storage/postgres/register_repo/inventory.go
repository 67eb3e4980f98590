// Package register_repo provides the PostgreSQL implementation of the
// inventory ledger register.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/registers/inventory"
	"stockpilot/internal/infrastructure/storage/postgres"
)

const inventoryTable = "reg_inventory"

// joined columns for list/detail reads
const inventorySelectJoined = `
	i.id, i.product_id, i.store_id, i.quantity, i.last_updated,
	p.name AS product_name, p.reorder_level,
	s.name AS store_name`

// InventoryRepo implements inventory.Repository.
// Quantity mutations are single atomic statements: the UPSERT for
// Increase and the floor-checked UPDATE for Decrease. Two concurrent
// writers serialize on the (product_id, store_id) row, so the
// non-negative invariant holds without explicit locking in callers.
type InventoryRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ inventory.Repository = (*InventoryRepo)(nil)

// NewInventoryRepo creates an inventory register repository.
func NewInventoryRepo(txm *postgres.TxManager) *InventoryRepo {
	return &InventoryRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetQuantity returns quantity on hand, 0 when no row exists.
func (r *InventoryRepo) GetQuantity(ctx context.Context, productID, storeID id.ID) (int64, error) {
	var quantity int64
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, `
		SELECT quantity FROM reg_inventory
		WHERE product_id = $1 AND store_id = $2
	`, productID, storeID).Scan(&quantity)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get quantity: %w", err)
	}
	return quantity, nil
}

// GetForUpdate returns the row with a pessimistic lock. Absent rows come
// back with Quantity 0 and no lock; the caller's subsequent write is
// still safe because mutations are single atomic statements.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, storeID id.ID) (inventory.Row, error) {
	var row inventory.Row
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, `
		SELECT id, product_id, store_id, quantity, last_updated
		FROM reg_inventory
		WHERE product_id = $1 AND store_id = $2
		FOR UPDATE
	`, productID, storeID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return inventory.Row{ProductID: productID, StoreID: storeID, Quantity: 0}, nil
		}
		return row, fmt.Errorf("get for update: %w", err)
	}
	return row, nil
}

// Increase adds delta to the row, creating it lazily.
func (r *InventoryRepo) Increase(ctx context.Context, productID, storeID id.ID, delta int64) error {
	if delta <= 0 {
		return apperror.NewInvalidInput("inventory delta must be positive").
			WithDetail("delta", delta)
	}

	_, err := r.txm.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO reg_inventory (id, product_id, store_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (product_id, store_id) DO UPDATE
		SET quantity = reg_inventory.quantity + EXCLUDED.quantity,
		    last_updated = NOW()
	`, id.New(), productID, storeID, delta)
	if err != nil {
		return fmt.Errorf("increase inventory: %w", err)
	}
	return nil
}

// Decrease subtracts delta from the row. The quantity floor is enforced
// in the WHERE clause, so the check and the write are one statement; when
// no row matches the stock is insufficient (or the row does not exist,
// which is the same thing: zero on hand).
func (r *InventoryRepo) Decrease(ctx context.Context, productID, storeID id.ID, delta int64) error {
	if delta <= 0 {
		return apperror.NewInvalidInput("inventory delta must be positive").
			WithDetail("delta", delta)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, `
		UPDATE reg_inventory
		SET quantity = quantity - $3, last_updated = NOW()
		WHERE product_id = $1 AND store_id = $2 AND quantity >= $3
	`, productID, storeID, delta)
	if err != nil {
		return fmt.Errorf("decrease inventory: %w", err)
	}

	if tag.RowsAffected() == 0 {
		available, err := r.GetQuantity(ctx, productID, storeID)
		if err != nil {
			return fmt.Errorf("read available after failed decrease: %w", err)
		}
		return apperror.NewInsufficientStock(productID.String(), delta, available)
	}

	return nil
}

// GetByID returns a row with joined product/store fields, scoped to the
// company through the product relation.
func (r *InventoryRepo) GetByID(ctx context.Context, rowID id.ID, companyID string) (inventory.Row, error) {
	var row inventory.Row
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, `
		SELECT`+inventorySelectJoined+`
		FROM reg_inventory i
		JOIN cat_products p ON p.id = i.product_id
		JOIN cat_stores s ON s.id = i.store_id
		WHERE i.id = $1 AND p.company_id = $2
	`, rowID, companyID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return row, apperror.NewNotFound("inventory", rowID.String())
		}
		return row, fmt.Errorf("get inventory row: %w", err)
	}
	return row, nil
}

// List returns the company's ledger rows with joined display fields.
func (r *InventoryRepo) List(ctx context.Context, companyID string, filter inventory.ListFilter) (domain.ListResult[inventory.Row], error) {
	return r.list(ctx, companyID, filter, false)
}

// ListLowStock returns rows at or below the product's reorder level.
func (r *InventoryRepo) ListLowStock(ctx context.Context, companyID string, filter inventory.ListFilter) (domain.ListResult[inventory.Row], error) {
	return r.list(ctx, companyID, filter, true)
}

func (r *InventoryRepo) list(ctx context.Context, companyID string, filter inventory.ListFilter, lowStockOnly bool) (domain.ListResult[inventory.Row], error) {
	result := domain.ListResult[inventory.Row]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	base := r.builder.
		Select().
		From(inventoryTable + " i").
		Join("cat_products p ON p.id = i.product_id").
		Join("cat_stores s ON s.id = i.store_id").
		Where(squirrel.Eq{"p.company_id": companyID})

	if filter.ProductID != nil {
		base = base.Where(squirrel.Eq{"i.product_id": *filter.ProductID})
	}
	if filter.StoreID != nil {
		base = base.Where(squirrel.Eq{"i.store_id": *filter.StoreID})
	}
	if filter.Search != "" {
		base = base.Where(squirrel.ILike{"p.name": "%" + filter.Search + "%"})
	}
	if lowStockOnly {
		base = base.Where(squirrel.Expr("i.quantity <= p.reorder_level"))
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count inventory: %w", err)
	}

	q := base.Column(squirrel.Expr(inventorySelectJoined)).
		OrderBy("p.name", "s.name")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select inventory: %w", err)
	}

	return result, nil
}

// SetQuantity overwrites quantity for an existing row.
func (r *InventoryRepo) SetQuantity(ctx context.Context, rowID id.ID, quantity int64) error {
	if quantity < 0 {
		return apperror.NewInvalidInput("quantity must not be negative").
			WithDetail("quantity", quantity)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, `
		UPDATE reg_inventory
		SET quantity = $2, last_updated = NOW()
		WHERE id = $1
	`, rowID, quantity)
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("inventory", rowID.String())
	}
	return nil
}
