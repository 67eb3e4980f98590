// Package dto defines request payloads for the v1 API. Binding tags on
// the request structs are the structural validation layer; business
// invariants are enforced by the domain entities and services.
//
// Responses reuse the domain entities directly: they carry json tags and
// contain nothing the API should hide.
package dto

import (
	"time"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
)

// ParseID parses a UUID path or query value into a typed error on failure.
func ParseID(field, value string) (id.ID, error) {
	parsed, err := id.Parse(value)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid id format").
			WithDetail("field", field).
			WithDetail("value", value)
	}
	return parsed, nil
}

// ParseOptionalID parses a query value into *id.ID, nil when absent.
func ParseOptionalID(field, value string) (*id.ID, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := ParseID(field, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ParseOptionalDate parses an RFC 3339 or YYYY-MM-DD query value.
func ParseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	return nil, apperror.NewValidation("invalid date format").
		WithDetail("field", field).
		WithDetail("value", value)
}
