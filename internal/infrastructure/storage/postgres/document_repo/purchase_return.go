package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/documents/purchasereturn"
	"stockpilot/internal/infrastructure/storage/postgres"
)

const (
	purchaseReturnsTable     = "doc_purchase_returns"
	purchaseReturnItemsTable = "doc_purchase_return_items"
)

const purchaseReturnSelectJoined = `
	d.id, d.number, d.date, d.version, d.notes,
	d.created_by, d.created_at, d.updated_at,
	d.purchase_id, d.vendor_id, d.store_id, d.status, d.reason,
	d.refund_amount,
	o.number AS purchase_number,
	v.name AS vendor_name, s.name AS store_name`

// PurchaseReturnRepo implements purchasereturn.Repository.
type PurchaseReturnRepo struct {
	baseDocumentRepo[*purchasereturn.PurchaseReturn]
}

var _ purchasereturn.Repository = (*PurchaseReturnRepo)(nil)

// NewPurchaseReturnRepo creates a purchase return document repository.
func NewPurchaseReturnRepo(txm *postgres.TxManager) *PurchaseReturnRepo {
	return &PurchaseReturnRepo{
		baseDocumentRepo: newBaseDocumentRepo[*purchasereturn.PurchaseReturn](
			txm, purchaseReturnsTable, "purchase_return",
			[]string{"purchase_id", "vendor_id", "store_id", "status", "reason", "refund_amount"},
		),
	}
}

// GetByID retrieves a purchase return header with joined names, scoped
// to the company through the vendor relation.
func (r *PurchaseReturnRepo) GetByID(ctx context.Context, docID id.ID, companyID string) (*purchasereturn.PurchaseReturn, error) {
	var doc purchasereturn.PurchaseReturn
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &doc, `
		SELECT`+purchaseReturnSelectJoined+`
		FROM doc_purchase_returns d
		JOIN doc_purchases o ON o.id = d.purchase_id
		JOIN cat_vendors v ON v.id = d.vendor_id
		JOIN cat_stores s ON s.id = d.store_id
		WHERE d.id = $1 AND v.company_id = $2
	`, docID, companyID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase_return", docID.String())
		}
		return nil, fmt.Errorf("get purchase return: %w", err)
	}
	return &doc, nil
}

// List retrieves purchase returns with joined names and filtering.
func (r *PurchaseReturnRepo) List(ctx context.Context, companyID string, filter purchasereturn.ListFilter) (domain.ListResult[*purchasereturn.PurchaseReturn], error) {
	result := domain.ListResult[*purchasereturn.PurchaseReturn]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	base := r.Builder().
		Select().
		From(purchaseReturnsTable + " d").
		Join("doc_purchases o ON o.id = d.purchase_id").
		Join("cat_vendors v ON v.id = d.vendor_id").
		Join("cat_stores s ON s.id = d.store_id").
		Where(squirrel.Eq{"v.company_id": companyID})

	base = applyCommonFilters(base, filter.ListFilter)
	if filter.PurchaseID != nil {
		base = base.Where(squirrel.Eq{"d.purchase_id": *filter.PurchaseID})
	}
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
		return result, fmt.Errorf("count purchase returns: %w", err)
	}

	q := applyListOrder(base.Column(squirrel.Expr(purchaseReturnSelectJoined)), filter.OrderBy)
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
		return result, fmt.Errorf("select purchase returns: %w", err)
	}

	return result, nil
}

// GetItems returns the document lines with joined product names.
func (r *PurchaseReturnRepo) GetItems(ctx context.Context, docID id.ID) ([]purchasereturn.Item, error) {
	var items []purchasereturn.Item
	err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, `
		SELECT i.line_id, i.line_no, i.product_id, i.quantity,
		       i.unit_price, i.total_price,
		       p.name AS product_name
		FROM doc_purchase_return_items i
		JOIN cat_products p ON p.id = i.product_id
		WHERE i.document_id = $1
		ORDER BY i.line_no
	`, docID)
	if err != nil {
		return nil, fmt.Errorf("select purchase return items: %w", err)
	}
	return items, nil
}

// SaveItems replaces all lines of the document.
func (r *PurchaseReturnRepo) SaveItems(ctx context.Context, docID id.ID, items []purchasereturn.Item) error {
	if err := r.deleteItems(ctx, purchaseReturnItemsTable, docID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	q := r.Builder().Insert(purchaseReturnItemsTable).Columns(
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
		return fmt.Errorf("insert purchase return items: %w", err)
	}
	return nil
}

// DeleteItems removes all lines of the document.
func (r *PurchaseReturnRepo) DeleteItems(ctx context.Context, docID id.ID) error {
	return r.deleteItems(ctx, purchaseReturnItemsTable, docID)
}
