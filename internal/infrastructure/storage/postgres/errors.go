package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"stockpilot/internal/core/apperror"
)

// PostgreSQL error codes we translate into the typed taxonomy.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// TranslateError maps low-level pgx errors onto typed application errors.
// Unrecognized errors come back unchanged so callers can wrap them.
func TranslateError(err error, entityName string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return apperror.NewDuplicate(entityName, pgErr.ConstraintName, "").WithCause(err)
	case codeForeignKeyViolation:
		return apperror.NewConflict("operation violates a reference to " + entityName).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	}

	return err
}
