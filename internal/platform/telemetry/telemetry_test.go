package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestMiddlewareRecordsAndExports(t *testing.T) {
	m := New("careloop-test")
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/doctors")

	h := m.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	if err := m.Handler()(c); err != nil {
		t.Fatalf("metrics handler: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "http_requests_total") {
		t.Error("expected http_requests_total in exposition")
	}
	if !strings.Contains(body, `route="/api/doctors"`) {
		t.Error("expected route label in exposition")
	}
}

func TestMiddlewareUsesHTTPErrorStatus(t *testing.T) {
	m := New("careloop-test")
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), httptest.NewRecorder())
	c.SetPath("/x")

	h := m.Middleware()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, "nope")
	})
	_ = h(c)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	if err := m.Handler()(e.NewContext(req, rec)); err != nil {
		t.Fatalf("metrics handler: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `status="403"`) {
		t.Error("expected status 403 label in exposition")
	}
}
