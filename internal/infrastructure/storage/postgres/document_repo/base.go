// Package document_repo provides PostgreSQL persistence for the five
// document kinds. A generic base covers the header table; per-kind repos
// add joined detail reads, item tables and kind-specific queries.
//
// Tenant scoping rides the store (or vendor) relation: detail and list
// reads join the catalog row and filter on its company_id, so a document
// of another tenant reads as NotFound.
package document_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
	"stockpilot/internal/infrastructure/storage/postgres"
)

// documentColumns are the header columns shared by every document table.
var documentColumns = []string{
	"id", "number", "date", "version", "notes",
	"created_by", "created_at", "updated_at",
}

// baseDocumentRepo provides header CRUD shared by all document kinds.
type baseDocumentRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	entityName string
	insertCols []string
}

func newBaseDocumentRepo[T any](txm *postgres.TxManager, tableName, entityName string, kindCols []string) baseDocumentRepo[T] {
	cols := make([]string, 0, len(documentColumns)+len(kindCols))
	cols = append(cols, documentColumns...)
	cols = append(cols, kindCols...)
	return baseDocumentRepo[T]{
		txm:        txm,
		tableName:  tableName,
		entityName: entityName,
		insertCols: cols,
	}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *baseDocumentRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the document header.
func (r *baseDocumentRepo[T]) Create(ctx context.Context, doc T) error {
	data := postgres.StructToMap(doc)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in %s", r.entityName)
	}

	// Joined display fields carry db tags too; keep table columns only.
	filtered := make(map[string]any, len(r.insertCols))
	for _, col := range r.insertCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.Builder().Insert(r.tableName).SetMap(filtered)
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateError(err, r.entityName)
	}
	return nil
}

// Update rewrites the header with optimistic locking. Version and
// updated_at are managed here; id, created_by and created_at never change.
func (r *baseDocumentRepo[T]) Update(ctx context.Context, doc T) error {
	data := postgres.StructToMap(doc)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in %s", r.entityName)
	}

	docID, ok := data["id"]
	if !ok {
		return fmt.Errorf("%s has no id field", r.entityName)
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("%s has no int version field", r.entityName)
	}

	filtered := make(map[string]any, len(r.insertCols))
	for _, col := range r.insertCols {
		switch col {
		case "id", "created_at", "created_by", "version", "updated_at":
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filtered).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": docID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, r.entityName)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.entityName, docID)
	}
	return nil
}

// Delete removes the header row. Items must be deleted first.
func (r *baseDocumentRepo[T]) Delete(ctx context.Context, docID id.ID) error {
	q := r.Builder().Delete(r.tableName).Where(squirrel.Eq{"id": docID})
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, r.entityName)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, docID.String())
	}
	return nil
}

// deleteItems removes all lines of a document from an item table.
func (r *baseDocumentRepo[T]) deleteItems(ctx context.Context, itemTable string, docID id.ID) error {
	q := r.Builder().Delete(itemTable).Where(squirrel.Eq{"document_id": docID})
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete items: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return nil
}

// applyListOrder translates a "-col" / "col" order spec into ORDER BY on
// the document alias, falling back to date descending.
func applyListOrder(q squirrel.SelectBuilder, orderBy string) squirrel.SelectBuilder {
	col, dir := "date", "DESC"
	if orderBy != "" {
		col = orderBy
		dir = "ASC"
		if strings.HasPrefix(orderBy, "-") {
			col = orderBy[1:]
			dir = "DESC"
		}
	}
	switch col {
	case "date", "number", "created_at", "updated_at":
	default:
		col, dir = "date", "DESC"
	}
	return q.OrderBy("d."+col+" "+dir, "d.created_at DESC")
}

// applyCommonFilters applies number search and date bounds shared by all
// document listings.
func applyCommonFilters(q squirrel.SelectBuilder, filter domain.ListFilter) squirrel.SelectBuilder {
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"d.number": "%" + filter.Search + "%"})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"d.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"d.date": *filter.DateTo})
	}
	return q
}
