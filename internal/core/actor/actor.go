// Package actor provides the authenticated caller identity.
// Every core call receives an Actor with its tenant (company) scope;
// the identity is trusted as-is and never re-derived inside the core.
package actor

import (
	"context"

	"stockpilot/internal/core/apperror"
)

// Role is the coarse platform role of an authenticated user.
type Role string

const (
	RoleSuperAdmin   Role = "SUPER_ADMIN"
	RoleAdmin        Role = "ADMIN"
	RoleStoreManager Role = "STORE_MANAGER"
	RoleSalesPerson  Role = "SALES_PERSON"
)

// Actor contains authenticated user information.
// CompanyID is empty for platform roles that are not bound to a tenant.
type Actor struct {
	UserID    string
	CompanyID string
	Role      Role
	Email     string
}

// HasCompany reports whether the actor is bound to a tenant.
func (a *Actor) HasCompany() bool {
	return a != nil && a.CompanyID != ""
}

// RequireCompany returns the actor's company ID or a typed error when the
// actor is not scoped to a company. Document operations always require it.
func (a *Actor) RequireCompany() (string, error) {
	if !a.HasCompany() {
		return "", apperror.NewNotFound("company", nil)
	}
	return a.CompanyID, nil
}

type actorKey struct{}

// WithActor adds Actor to context.
func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// FromContext returns Actor from context, or nil.
func FromContext(ctx context.Context) *Actor {
	if v, ok := ctx.Value(actorKey{}).(*Actor); ok {
		return v
	}
	return nil
}

// CompanyID returns the acting company from context or empty string.
func CompanyID(ctx context.Context) string {
	if a := FromContext(ctx); a != nil {
		return a.CompanyID
	}
	return ""
}

// UserID returns user ID from context or empty string.
func UserID(ctx context.Context) string {
	if a := FromContext(ctx); a != nil {
		return a.UserID
	}
	return ""
}
