package auth

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/apperr"
)

// Authenticator turns an inbound request into a claims set. Exactly one
// strategy is selected at startup; endpoints never pick their own scheme.
type Authenticator interface {
	Authenticate(c echo.Context) (*Claims, error)
}

// RevocationChecker answers whether a token id has been revoked. A nil
// checker disables revocation checks.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// BearerAuthenticator decodes "Authorization: Bearer <token>" credentials.
// With Insecure set, claims are parsed without signature verification —
// that mode reproduces the legacy behavior for test rigs only and is
// refused by config validation outside development.
type BearerAuthenticator struct {
	KeyFunc  jwt.Keyfunc
	Insecure bool
	Revoker  RevocationChecker
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", apperr.MissingCredential("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", apperr.MissingCredential("missing bearer token")
	}
	return parts[1], nil
}

func (a *BearerAuthenticator) Authenticate(c echo.Context) (*Claims, error) {
	tokenStr, err := bearerToken(c)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	if a.Insecure {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
			return nil, apperr.MalformedCredential("undecodable token")
		}
	} else {
		token, err := jwt.ParseWithClaims(tokenStr, claims, a.KeyFunc,
			jwt.WithValidMethods([]string{"RS256", "HS256"}))
		if err != nil || !token.Valid {
			return nil, apperr.MalformedCredential("invalid token")
		}
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, apperr.MalformedCredential("token missing identity claims")
	}

	// Legacy issuers omit tenant_id for admins; the admin's own id is the
	// hospital it administers.
	if claims.Role == RoleAdmin && claims.TenantID == "" {
		claims.TenantID = claims.Subject
	}

	if a.Revoker != nil && claims.ID != "" {
		revoked, err := a.Revoker.IsRevoked(c.Request().Context(), claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, apperr.MalformedCredential("token revoked")
		}
	}

	return claims, nil
}

// Principal is an identity record resolved from the persistence layer for
// the legacy header scheme.
type Principal struct {
	ID       string
	Role     Role
	Email    string
	TenantID string
}

// PrincipalResolver looks an identity up by email. Implemented by the
// account repository; wired in main.
type PrincipalResolver interface {
	ResolveByEmail(ctx context.Context, email string) (*Principal, error)
}

// EmailHeaderAuthenticator supports the legacy X-User-Email scheme: the
// header names a principal which is re-resolved through the persistence
// layer on every request.
type EmailHeaderAuthenticator struct {
	Resolver PrincipalResolver
}

// HeaderUserEmail is the legacy identity header.
const HeaderUserEmail = "X-User-Email"

func (a *EmailHeaderAuthenticator) Authenticate(c echo.Context) (*Claims, error) {
	email := strings.TrimSpace(c.Request().Header.Get(HeaderUserEmail))
	if email == "" {
		return nil, apperr.MissingCredential("missing identity header")
	}

	p, err := a.Resolver.ResolveByEmail(c.Request().Context(), email)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Role.Valid() {
		return nil, apperr.MalformedCredential("unknown identity")
	}

	claims := &Claims{
		Role:     p.Role,
		TenantID: p.TenantID,
		Email:    p.Email,
	}
	claims.Subject = p.ID
	if p.Role == RoleAdmin && claims.TenantID == "" {
		claims.TenantID = p.ID
	}
	return claims, nil
}

// Middleware authenticates every request with the configured strategy and
// installs the claims into the request context.
func Middleware(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := a.Authenticate(c)
			if err != nil {
				return apperr.HTTP(err)
			}
			ctx := WithClaims(c.Request().Context(), claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
