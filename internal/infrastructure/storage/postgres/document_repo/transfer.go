package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/documents/transfer"
	"stockpilot/internal/infrastructure/storage/postgres"
)

const (
	transfersTable     = "doc_transfers"
	transferItemsTable = "doc_transfer_items"
)

const transferSelectJoined = `
	d.id, d.number, d.date, d.version, d.notes,
	d.created_by, d.created_at, d.updated_at,
	d.from_store_id, d.to_store_id, d.status,
	fs.name AS from_store_name, ts.name AS to_store_name`

// TransferRepo implements transfer.Repository.
type TransferRepo struct {
	baseDocumentRepo[*transfer.Transfer]
}

var _ transfer.Repository = (*TransferRepo)(nil)

// NewTransferRepo creates a transfer document repository.
func NewTransferRepo(txm *postgres.TxManager) *TransferRepo {
	return &TransferRepo{
		baseDocumentRepo: newBaseDocumentRepo[*transfer.Transfer](
			txm, transfersTable, "transfer",
			[]string{"from_store_id", "to_store_id", "status"},
		),
	}
}

// GetByID retrieves a transfer header with joined store names, scoped to
// the company through the source store relation.
func (r *TransferRepo) GetByID(ctx context.Context, docID id.ID, companyID string) (*transfer.Transfer, error) {
	var doc transfer.Transfer
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &doc, `
		SELECT`+transferSelectJoined+`
		FROM doc_transfers d
		JOIN cat_stores fs ON fs.id = d.from_store_id
		JOIN cat_stores ts ON ts.id = d.to_store_id
		WHERE d.id = $1 AND fs.company_id = $2
	`, docID, companyID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("transfer", docID.String())
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &doc, nil
}

// List retrieves transfers with joined names and filtering.
func (r *TransferRepo) List(ctx context.Context, companyID string, filter transfer.ListFilter) (domain.ListResult[*transfer.Transfer], error) {
	result := domain.ListResult[*transfer.Transfer]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	base := r.Builder().
		Select().
		From(transfersTable + " d").
		Join("cat_stores fs ON fs.id = d.from_store_id").
		Join("cat_stores ts ON ts.id = d.to_store_id").
		Where(squirrel.Eq{"fs.company_id": companyID})

	base = applyCommonFilters(base, filter.ListFilter)
	if filter.FromStoreID != nil {
		base = base.Where(squirrel.Eq{"d.from_store_id": *filter.FromStoreID})
	}
	if filter.ToStoreID != nil {
		base = base.Where(squirrel.Eq{"d.to_store_id": *filter.ToStoreID})
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
		return result, fmt.Errorf("count transfers: %w", err)
	}

	q := applyListOrder(base.Column(squirrel.Expr(transferSelectJoined)), filter.OrderBy)
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
		return result, fmt.Errorf("select transfers: %w", err)
	}

	return result, nil
}

// GetItems returns the document lines with joined product names.
func (r *TransferRepo) GetItems(ctx context.Context, docID id.ID) ([]transfer.Item, error) {
	var items []transfer.Item
	err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, `
		SELECT i.line_id, i.line_no, i.product_id, i.quantity,
		       p.name AS product_name
		FROM doc_transfer_items i
		JOIN cat_products p ON p.id = i.product_id
		WHERE i.document_id = $1
		ORDER BY i.line_no
	`, docID)
	if err != nil {
		return nil, fmt.Errorf("select transfer items: %w", err)
	}
	return items, nil
}

// SaveItems replaces all lines of the document.
func (r *TransferRepo) SaveItems(ctx context.Context, docID id.ID, items []transfer.Item) error {
	if err := r.deleteItems(ctx, transferItemsTable, docID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	q := r.Builder().Insert(transferItemsTable).Columns(
		"line_id", "document_id", "line_no", "product_id", "quantity",
	)
	for _, item := range items {
		q = q.Values(item.LineID, docID, item.LineNo, item.ProductID, item.Quantity)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert items: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert transfer items: %w", err)
	}
	return nil
}

// DeleteItems removes all lines of the document.
func (r *TransferRepo) DeleteItems(ctx context.Context, docID id.ID) error {
	return r.deleteItems(ctx, transferItemsTable, docID)
}
