package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/documents/purchase"
	"stockpilot/internal/infrastructure/storage/postgres"
)

const (
	purchasesTable     = "doc_purchases"
	purchaseItemsTable = "doc_purchase_items"
)

const purchaseSelectJoined = `
	d.id, d.number, d.date, d.version, d.notes,
	d.created_by, d.created_at, d.updated_at,
	d.vendor_id, d.store_id, d.status,
	d.total_amount, d.paid_amount, d.due_amount,
	v.name AS vendor_name, s.name AS store_name`

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	baseDocumentRepo[*purchase.Purchase]
}

var _ purchase.Repository = (*PurchaseRepo)(nil)

// NewPurchaseRepo creates a purchase document repository.
func NewPurchaseRepo(txm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		baseDocumentRepo: newBaseDocumentRepo[*purchase.Purchase](
			txm, purchasesTable, "purchase",
			[]string{"vendor_id", "store_id", "status", "total_amount", "paid_amount", "due_amount"},
		),
	}
}

// GetByID retrieves a purchase header with joined vendor/store names,
// scoped to the company through the vendor relation.
func (r *PurchaseRepo) GetByID(ctx context.Context, docID id.ID, companyID string) (*purchase.Purchase, error) {
	var doc purchase.Purchase
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &doc, `
		SELECT`+purchaseSelectJoined+`
		FROM doc_purchases d
		JOIN cat_vendors v ON v.id = d.vendor_id
		JOIN cat_stores s ON s.id = d.store_id
		WHERE d.id = $1 AND v.company_id = $2
	`, docID, companyID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase", docID.String())
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &doc, nil
}

// List retrieves purchases with joined names and filtering.
func (r *PurchaseRepo) List(ctx context.Context, companyID string, filter purchase.ListFilter) (domain.ListResult[*purchase.Purchase], error) {
	result := domain.ListResult[*purchase.Purchase]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	base := r.Builder().
		Select().
		From(purchasesTable + " d").
		Join("cat_vendors v ON v.id = d.vendor_id").
		Join("cat_stores s ON s.id = d.store_id").
		Where(squirrel.Eq{"v.company_id": companyID})

	base = applyCommonFilters(base, filter.ListFilter)
	if filter.VendorID != nil {
		base = base.Where(squirrel.Eq{"d.vendor_id": *filter.VendorID})
	}
	if filter.StoreID != nil {
		base = base.Where(squirrel.Eq{"d.store_id": *filter.StoreID})
	}
	if filter.Status != nil {
		base = base.Where(squirrel.Eq{"d.status": *filter.Status})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count purchases: %w", err)
	}

	q := applyListOrder(base.Column(squirrel.Expr(purchaseSelectJoined)), filter.OrderBy)
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
		return result, fmt.Errorf("select purchases: %w", err)
	}

	return result, nil
}

// GetItems returns the document lines with joined product names.
func (r *PurchaseRepo) GetItems(ctx context.Context, docID id.ID) ([]purchase.Item, error) {
	var items []purchase.Item
	err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, `
		SELECT i.line_id, i.line_no, i.product_id, i.quantity,
		       i.unit_price, i.total_price,
		       p.name AS product_name
		FROM doc_purchase_items i
		JOIN cat_products p ON p.id = i.product_id
		WHERE i.document_id = $1
		ORDER BY i.line_no
	`, docID)
	if err != nil {
		return nil, fmt.Errorf("select purchase items: %w", err)
	}
	return items, nil
}

// SaveItems replaces all lines of the document.
func (r *PurchaseRepo) SaveItems(ctx context.Context, docID id.ID, items []purchase.Item) error {
	if err := r.deleteItems(ctx, purchaseItemsTable, docID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	q := r.Builder().Insert(purchaseItemsTable).Columns(
		"line_id", "document_id", "line_no", "product_id",
		"quantity", "unit_price", "total_price",
	)
	for _, item := range items {
		q = q.Values(
			item.LineID, docID, item.LineNo, item.ProductID,
			item.Quantity, item.UnitPrice, item.TotalPrice,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert items: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase items: %w", err)
	}
	return nil
}

// DeleteItems removes all lines of the document.
func (r *PurchaseRepo) DeleteItems(ctx context.Context, docID id.ID) error {
	return r.deleteItems(ctx, purchaseItemsTable, docID)
}

// HasReturns reports whether purchase returns reference this document.
func (r *PurchaseRepo) HasReturns(ctx context.Context, docID id.ID) (bool, error) {
	var one int
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, `
		SELECT 1 FROM doc_purchase_returns WHERE purchase_id = $1 LIMIT 1
	`, docID).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check purchase returns: %w", err)
	}
	return true, nil
}
