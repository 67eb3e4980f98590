package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/documents/salereturn"
	"stockpilot/internal/infrastructure/storage/postgres"
)

const (
	saleReturnsTable     = "doc_sale_returns"
	saleReturnItemsTable = "doc_sale_return_items"
)

const saleReturnSelectJoined = `
	d.id, d.number, d.date, d.version, d.notes,
	d.created_by, d.created_at, d.updated_at,
	d.sale_id, d.store_id, d.customer_id, d.status, d.reason,
	d.refund_amount,
	o.number AS sale_number,
	COALESCE(c.name, '') AS customer_name, s.name AS store_name`

// SaleReturnRepo implements salereturn.Repository.
type SaleReturnRepo struct {
	baseDocumentRepo[*salereturn.SaleReturn]
}

var _ salereturn.Repository = (*SaleReturnRepo)(nil)

// NewSaleReturnRepo creates a sale return document repository.
func NewSaleReturnRepo(txm *postgres.TxManager) *SaleReturnRepo {
	return &SaleReturnRepo{
		baseDocumentRepo: newBaseDocumentRepo[*salereturn.SaleReturn](
			txm, saleReturnsTable, "sale_return",
			[]string{"sale_id", "store_id", "customer_id", "status", "reason", "refund_amount"},
		),
	}
}

// GetByID retrieves a sale return header with joined names, scoped to
// the company through the store relation.
func (r *SaleReturnRepo) GetByID(ctx context.Context, docID id.ID, companyID string) (*salereturn.SaleReturn, error) {
	var doc salereturn.SaleReturn
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &doc, `
		SELECT`+saleReturnSelectJoined+`
		FROM doc_sale_returns d
		JOIN doc_sales o ON o.id = d.sale_id
		JOIN cat_stores s ON s.id = d.store_id
		LEFT JOIN cat_customers c ON c.id = d.customer_id
		WHERE d.id = $1 AND s.company_id = $2
	`, docID, companyID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale_return", docID.String())
		}
		return nil, fmt.Errorf("get sale return: %w", err)
	}
	return &doc, nil
}

// List retrieves sale returns with joined names and filtering.
func (r *SaleReturnRepo) List(ctx context.Context, companyID string, filter salereturn.ListFilter) (domain.ListResult[*salereturn.SaleReturn], error) {
	result := domain.ListResult[*salereturn.SaleReturn]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	base := r.Builder().
		Select().
		From(saleReturnsTable + " d").
		Join("doc_sales o ON o.id = d.sale_id").
		Join("cat_stores s ON s.id = d.store_id").
		LeftJoin("cat_customers c ON c.id = d.customer_id").
		Where(squirrel.Eq{"s.company_id": companyID})

	base = applyCommonFilters(base, filter.ListFilter)
	if filter.SaleID != nil {
		base = base.Where(squirrel.Eq{"d.sale_id": *filter.SaleID})
	}
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
		return result, fmt.Errorf("count sale returns: %w", err)
	}

	q := applyListOrder(base.Column(squirrel.Expr(saleReturnSelectJoined)), filter.OrderBy)
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
		return result, fmt.Errorf("select sale returns: %w", err)
	}

	return result, nil
}

// GetItems returns the document lines with joined product names.
func (r *SaleReturnRepo) GetItems(ctx context.Context, docID id.ID) ([]salereturn.Item, error) {
	var items []salereturn.Item
	err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, `
		SELECT i.line_id, i.line_no, i.product_id, i.quantity,
		       i.unit_price, i.total_price,
		       p.name AS product_name
		FROM doc_sale_return_items i
		JOIN cat_products p ON p.id = i.product_id
		WHERE i.document_id = $1
		ORDER BY i.line_no
	`, docID)
	if err != nil {
		return nil, fmt.Errorf("select sale return items: %w", err)
	}
	return items, nil
}

// SaveItems replaces all lines of the document.
func (r *SaleReturnRepo) SaveItems(ctx context.Context, docID id.ID, items []salereturn.Item) error {
	if err := r.deleteItems(ctx, saleReturnItemsTable, docID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	q := r.Builder().Insert(saleReturnItemsTable).Columns(
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
		return fmt.Errorf("insert sale return items: %w", err)
	}
	return nil
}

// DeleteItems removes all lines of the document.
func (r *SaleReturnRepo) DeleteItems(ctx context.Context, docID id.ID) error {
	return r.deleteItems(ctx, saleReturnItemsTable, docID)
}
