// Package numerator provides domain contracts for document auto-numbering.
// Implementations live in the infrastructure layer.
package numerator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockpilot/internal/core/id"
)

// Config holds numbering configuration for one document kind.
type Config struct {
	// Prefix identifies the document kind (e.g. "PUR", "SAL", "TRF")
	Prefix string

	// StoreID scopes the daily sequence to one store. Zero means the
	// sequence is kind-wide.
	StoreID id.ID

	// StorePrefix is an optional store marker embedded in the number.
	// Display only; two stores with the same marker still count apart.
	StorePrefix string

	// PadWidth is the minimum sequence width (default 4)
	PadWidth int
}

// DefaultConfig returns the standard numbering config for a kind prefix.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:   prefix,
		PadWidth: 4,
	}
}

// WithStore returns a copy of the config scoped to a store.
// The store ID keys the sequence; the marker, derived from the first
// three letters of the store name, only decorates the number.
func (c Config) WithStore(storeID id.ID, storeName string) Config {
	c.StoreID = storeID
	c.StorePrefix = StoreMarker(storeName)
	return c
}

// StoreMarker derives the store prefix embedded in document numbers.
func StoreMarker(storeName string) string {
	name := []rune(strings.ToUpper(strings.TrimSpace(storeName)))
	if len(name) > 3 {
		name = name[:3]
	}
	return string(name)
}

// Key returns the sequence key for the given business day.
// Sequences reset per calendar day; store-scoped kinds key on the store
// ID, so stores with similar names never share a counter.
func (c Config) Key(day time.Time) string {
	if !id.IsNil(c.StoreID) {
		return fmt.Sprintf("%s_%s_%s", c.Prefix, c.StoreID, day.Format("20060102"))
	}
	return fmt.Sprintf("%s_%s", c.Prefix, day.Format("20060102"))
}

// Format renders the final document number.
// Pattern: PREFIX[-STORE]-YYYYMM-XXXX (e.g. PUR-MAI-202608-0001).
func (c Config) Format(day time.Time, seq int64) string {
	padWidth := c.PadWidth
	if padWidth == 0 {
		padWidth = 4
	}
	if c.StorePrefix != "" {
		return fmt.Sprintf("%s-%s-%s-%0*d", c.Prefix, c.StorePrefix, day.Format("200601"), padWidth, seq)
	}
	return fmt.Sprintf("%s-%s-%0*d", c.Prefix, day.Format("200601"), padWidth, seq)
}

// Generator generates sequential document numbers.
//
// Numbers are allocated from an atomic per-(kind, store, day) counter row,
// not by counting existing documents: two concurrent creations can read the
// same count before either commits, which produces duplicates. The counter
// is consumed inside the same transaction as the document insert. A rolled
// back create may leave a gap in the sequence; duplicates cannot happen.
type Generator interface {
	// NextNumber allocates and formats the next document number for the
	// given config and business day.
	NextNumber(ctx context.Context, cfg Config, day time.Time) (string, error)

	// SetNextNumber sets the next sequence value (for migrations).
	SetNextNumber(ctx context.Context, cfg Config, day time.Time, value int64) error
}
