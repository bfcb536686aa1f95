package auth

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/apperr"
)

// AccountStatus is the lifecycle state of a hospital or doctor account.
type AccountStatus string

const (
	StatusPending   AccountStatus = "pending"
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusRejected  AccountStatus = "rejected"
)

// Denied reports whether the status blocks authenticated access.
func (s AccountStatus) Denied() bool {
	return s == StatusSuspended || s == StatusRejected
}

// Valid reports whether the value is a known account status.
func (s AccountStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusSuspended, StatusRejected:
		return true
	default:
		return false
	}
}

// statusTransitions is the account lifecycle machine shared by hospitals
// and doctors. Rejected is terminal; there is no path back to pending.
var statusTransitions = map[AccountStatus][]AccountStatus{
	StatusPending:   {StatusActive, StatusRejected},
	StatusActive:    {StatusSuspended},
	StatusSuspended: {StatusActive},
	StatusRejected:  {},
}

// CanTransition reports whether the account machine permits from → to.
func CanTransition(from, to AccountStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusProbe resolves the effective account status for a caller. For
// doctors the probe must walk to the owning hospital: a doctor under a
// suspended hospital is denied even when its own status is active.
type StatusProbe interface {
	Probe(ctx context.Context, claims *Claims) (AccountStatus, error)
}

// StatusGate denies all access for suspended or rejected accounts. Runs
// after authentication, so claims are always present.
func StatusGate(probe StatusProbe) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			claims := ClaimsFromContext(ctx)
			if claims == nil {
				return apperr.HTTP(apperr.MissingCredential(""))
			}
			status, err := probe.Probe(ctx, claims)
			if err != nil {
				return apperr.HTTP(err)
			}
			if status.Denied() {
				return apperr.HTTP(apperr.Forbidden("account " + string(status)))
			}
			return next(c)
		}
	}
}
