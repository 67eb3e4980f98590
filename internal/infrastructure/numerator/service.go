// Package numerator provides the PostgreSQL implementation of document
// auto-numbering declared in core/numerator.
package numerator

import (
	"context"
	"fmt"
	"time"

	corenumerator "stockpilot/internal/core/numerator"
	"stockpilot/internal/infrastructure/storage/postgres"
)

// querierSource yields the querier for the current context. Satisfied
// by *postgres.TxManager.
type querierSource interface {
	GetQuerier(ctx context.Context) postgres.Querier
}

// Service allocates document numbers from sys_sequences counter rows.
//
// The querier comes from the TxManager, so when a document engine calls
// NextNumber inside RunInTransaction the counter upsert joins the
// document's transaction: a rolled back create releases nothing visible
// and never produces a duplicate number.
type Service struct {
	txm querierSource
}

var _ corenumerator.Generator = (*Service)(nil)

// New creates a numerator service backed by the transaction manager.
func New(txm querierSource) *Service {
	return &Service{txm: txm}
}

// NextNumber allocates the next sequence value for the config's key and
// formats the document number. The UPSERT with RETURNING is a single
// atomic statement; concurrent callers serialize on the counter row.
func (s *Service) NextNumber(ctx context.Context, cfg corenumerator.Config, day time.Time) (string, error) {
	key := cfg.Key(day)

	var seq int64
	err := s.txm.GetQuerier(ctx).QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`, key).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("next sequence for %s: %w", key, err)
	}

	return cfg.Format(day, seq), nil
}

// SetNextNumber overwrites the sequence value for the config's key.
func (s *Service) SetNextNumber(ctx context.Context, cfg corenumerator.Config, day time.Time, value int64) error {
	key := cfg.Key(day)

	_, err := s.txm.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = $2
	`, key, value)
	if err != nil {
		return fmt.Errorf("set sequence for %s: %w", key, err)
	}
	return nil
}
