package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakeProbe struct {
	statuses map[string]AccountStatus
}

func (f *fakeProbe) Probe(_ context.Context, claims *Claims) (AccountStatus, error) {
	if s, ok := f.statuses[claims.Subject]; ok {
		return s, nil
	}
	return StatusActive, nil
}

func TestStatusGateAllowsActive(t *testing.T) {
	probe := &fakeProbe{statuses: map[string]AccountStatus{"h1": StatusActive}}
	c := contextWithRole(RoleAdmin, "h1")
	called := false
	h := StatusGate(probe)(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("handler not reached")
	}
}

func TestStatusGateDeniesSuspendedAndRejected(t *testing.T) {
	probe := &fakeProbe{statuses: map[string]AccountStatus{
		"h1": StatusSuspended,
		"h2": StatusRejected,
	}}
	for _, subject := range []string{"h1", "h2"} {
		c := contextWithRole(RoleAdmin, subject)
		h := StatusGate(probe)(func(c echo.Context) error { return nil })
		err := h(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusForbidden {
			t.Fatalf("subject %s: expected 403, got %v", subject, err)
		}
	}
}

func TestStatusGatePendingStillPasses(t *testing.T) {
	// Pending hospitals keep authenticated access (they need it to upload
	// onboarding documents); only suspended/rejected are locked out.
	probe := &fakeProbe{statuses: map[string]AccountStatus{"h1": StatusPending}}
	c := contextWithRole(RoleAdmin, "h1")
	h := StatusGate(probe)(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]AccountStatus{
		{StatusPending, StatusActive},
		{StatusPending, StatusRejected},
		{StatusActive, StatusSuspended},
		{StatusSuspended, StatusActive},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Errorf("%s -> %s should be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]AccountStatus{
		{StatusRejected, StatusActive},
		{StatusRejected, StatusPending},
		{StatusActive, StatusPending},
		{StatusSuspended, StatusPending},
		{StatusActive, StatusActive},
	}
	for _, pair := range denied {
		if CanTransition(pair[0], pair[1]) {
			t.Errorf("%s -> %s should be denied", pair[0], pair[1])
		}
	}
}

func TestAccountStatusDenied(t *testing.T) {
	cases := map[AccountStatus]bool{
		StatusPending:   false,
		StatusActive:    false,
		StatusSuspended: true,
		StatusRejected:  true,
	}
	for status, want := range cases {
		if got := status.Denied(); got != want {
			t.Errorf("%s.Denied() = %v, want %v", status, got, want)
		}
	}
}
