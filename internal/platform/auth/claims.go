// Package auth is the authorization and tenant-scoping engine: it turns an
// inbound credential into a claims set, gates operations by role and
// account status, and resolves the tenant a caller may act within. Every
// decision is recomputed per request; the package holds no cross-request
// state beyond the JWKS cache.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role is the single role a principal holds. Roles are immutable after
// account creation; there is no escalation path.
type Role string

const (
	RoleParent     Role = "parent"
	RoleDoctor     Role = "doctor"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleParent, RoleDoctor, RoleAdmin, RoleSuperadmin:
		return true
	default:
		return false
	}
}

// Claims is the decoded credential. TenantID is resolved at decode time:
// for admins the issuer sets it to the hospital the admin owns, so nothing
// downstream needs to know that admin id and hospital id coincide today.
type Claims struct {
	jwt.RegisteredClaims
	Role     Role   `json:"role"`
	TenantID string `json:"tenant_id,omitempty"`
	Email    string `json:"email,omitempty"`
}

// UserID returns the principal identifier.
func (c *Claims) UserID() string { return c.Subject }

// Scope is the tenant scope a caller acts within, resolved once per
// request from the claims.
type Scope struct {
	Tenant     uuid.UUID
	Superadmin bool
}

// Owns reports whether a resource owned by the given hospital is within
// this scope. Superadmin is unconstrained; everyone else must match the
// resource's owning tenant exactly.
func (s Scope) Owns(hospitalID uuid.UUID) bool {
	if s.Superadmin {
		return true
	}
	return s.Tenant != uuid.Nil && s.Tenant == hospitalID
}

type contextKey string

const claimsKey contextKey = "auth_claims"

// WithClaims returns a context carrying the decoded claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the decoded claims, or nil when the request
// was not authenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// ScopeFromContext resolves the caller's tenant scope from the request
// claims. Returns a zero scope when the request is unauthenticated or the
// tenant id is not a UUID.
func ScopeFromContext(ctx context.Context) Scope {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return Scope{}
	}
	if claims.Role == RoleSuperadmin {
		return Scope{Superadmin: true}
	}
	tenant, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return Scope{}
	}
	return Scope{Tenant: tenant}
}
