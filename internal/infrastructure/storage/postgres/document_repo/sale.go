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
	"stockpilot/internal/domain/documents/sale"
	"stockpilot/internal/infrastructure/storage/postgres"
)

const (
	salesTable     = "doc_sales"
	saleItemsTable = "doc_sale_items"
)

// The customer join is LEFT: counter sales carry no customer.
const saleSelectJoined = `
	d.id, d.number, d.date, d.version, d.notes,
	d.created_by, d.created_at, d.updated_at,
	d.store_id, d.customer_id, d.status,
	d.subtotal, d.discount, d.tax,
	d.total_amount, d.paid_amount, d.due_amount,
	COALESCE(c.name, '') AS customer_name, s.name AS store_name`

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	baseDocumentRepo[*sale.Sale]
}

var _ sale.Repository = (*SaleRepo)(nil)

// NewSaleRepo creates a sale document repository.
func NewSaleRepo(txm *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		baseDocumentRepo: newBaseDocumentRepo[*sale.Sale](
			txm, salesTable, "sale",
			[]string{
				"store_id", "customer_id", "status",
				"subtotal", "discount", "tax",
				"total_amount", "paid_amount", "due_amount",
			},
		),
	}
}

// GetByID retrieves a sale header with joined customer/store names,
// scoped to the company through the store relation.
func (r *SaleRepo) GetByID(ctx context.Context, docID id.ID, companyID string) (*sale.Sale, error) {
	var doc sale.Sale
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &doc, `
		SELECT`+saleSelectJoined+`
		FROM doc_sales d
		JOIN cat_stores s ON s.id = d.store_id
		LEFT JOIN cat_customers c ON c.id = d.customer_id
		WHERE d.id = $1 AND s.company_id = $2
	`, docID, companyID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", docID.String())
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &doc, nil
}

// List retrieves sales with joined names and filtering.
func (r *SaleRepo) List(ctx context.Context, companyID string, filter sale.ListFilter) (domain.ListResult[*sale.Sale], error) {
	result := domain.ListResult[*sale.Sale]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	base := r.Builder().
		Select().
		From(salesTable + " d").
		Join("cat_stores s ON s.id = d.store_id").
		LeftJoin("cat_customers c ON c.id = d.customer_id").
		Where(squirrel.Eq{"s.company_id": companyID})

	base = applyCommonFilters(base, filter.ListFilter)
	if filter.CustomerID != nil {
		base = base.Where(squirrel.Eq{"d.customer_id": *filter.CustomerID})
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
		return result, fmt.Errorf("count sales: %w", err)
	}

	q := applyListOrder(base.Column(squirrel.Expr(saleSelectJoined)), filter.OrderBy)
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
		return result, fmt.Errorf("select sales: %w", err)
	}

	return result, nil
}

// GetItems returns the document lines with joined product names.
func (r *SaleRepo) GetItems(ctx context.Context, docID id.ID) ([]sale.Item, error) {
	var items []sale.Item
	err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, `
		SELECT i.line_id, i.line_no, i.product_id, i.quantity,
		       i.unit_price, i.total_price,
		       p.name AS product_name
		FROM doc_sale_items i
		JOIN cat_products p ON p.id = i.product_id
		WHERE i.document_id = $1
		ORDER BY i.line_no
	`, docID)
	if err != nil {
		return nil, fmt.Errorf("select sale items: %w", err)
	}
	return items, nil
}

// SaveItems replaces all lines of the document.
func (r *SaleRepo) SaveItems(ctx context.Context, docID id.ID, items []sale.Item) error {
	if err := r.deleteItems(ctx, saleItemsTable, docID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	q := r.Builder().Insert(saleItemsTable).Columns(
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
		return fmt.Errorf("insert sale items: %w", err)
	}
	return nil
}

// DeleteItems removes all lines of the document.
func (r *SaleRepo) DeleteItems(ctx context.Context, docID id.ID) error {
	return r.deleteItems(ctx, saleItemsTable, docID)
}

// HasReturns reports whether sale returns reference this document.
func (r *SaleRepo) HasReturns(ctx context.Context, docID id.ID) (bool, error) {
	var one int
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, `
		SELECT 1 FROM doc_sale_returns WHERE sale_id = $1 LIMIT 1
	`, docID).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check sale returns: %w", err)
	}
	return true, nil
}

// SetStatus updates only the status column.
func (r *SaleRepo) SetStatus(ctx context.Context, docID id.ID, status sale.Status) error {
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, `
		UPDATE doc_sales
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, docID, status)
	if err != nil {
		return fmt.Errorf("set sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", docID.String())
	}
	return nil
}
