package auth

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/apperr"
)

// Allowed reports whether the claims' role is in the allowed set. An empty
// set never allows anything.
func Allowed(claims *Claims, roles ...Role) bool {
	if claims == nil {
		return false
	}
	for _, r := range roles {
		if claims.Role == r {
			return true
		}
	}
	return false
}

// RequireRole gates a route group to the given roles. Membership is exact:
// superadmin must be listed to pass, there is no implicit bypass.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c.Request().Context())
			if Allowed(claims, roles...) {
				return next(c)
			}
			names := make([]string, len(roles))
			for i, r := range roles {
				names[i] = string(r)
			}
			return apperr.HTTP(apperr.Forbidden(
				fmt.Sprintf("required role: %s", strings.Join(names, " or "))))
		}
	}
}
