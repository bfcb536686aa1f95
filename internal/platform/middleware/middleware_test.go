package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newCtx() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequestIDGenerated(t *testing.T) {
	c, rec := newCtx()
	h := RequestID()(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get(HeaderRequestID) == "" {
		t.Error("expected generated request id in response")
	}
}

func TestRequestIDPreserved(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "my-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestID()(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Header().Get(HeaderRequestID); got != "my-id" {
		t.Errorf("request id = %q, want my-id", got)
	}
}

func TestRecoveryConvertsPanic(t *testing.T) {
	c, _ := newCtx()
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	h := Recovery(logger)(func(c echo.Context) error {
		panic("boom")
	})
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 HTTPError, got %v", err)
	}
}

func TestRecoveryLogsRequestID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "rid-7")
	c := e.NewContext(req, httptest.NewRecorder())

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	h := RequestID()(Recovery(logger)(func(c echo.Context) error {
		panic("boom")
	}))
	if err := h(c); err == nil {
		t.Fatal("expected HTTPError from recovered panic")
	}
	if !strings.Contains(buf.String(), `"request_id":"rid-7"`) {
		t.Errorf("log line missing request id: %s", buf.String())
	}
}

func TestRecoveryWithoutRequestID(t *testing.T) {
	c, _ := newCtx()
	var buf bytes.Buffer
	h := Recovery(zerolog.New(&buf))(func(c echo.Context) error {
		panic("boom")
	})
	_ = h(c)
	if strings.Contains(buf.String(), "<nil>") {
		t.Errorf("missing request id must log empty, not <nil>: %s", buf.String())
	}
}

func TestLoggerStatusFromHTTPError(t *testing.T) {
	c, _ := newCtx()
	var buf bytes.Buffer
	h := Logger(zerolog.New(&buf))(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})
	_ = h(c)
	line := buf.String()
	if !strings.Contains(line, `"status":404`) {
		t.Errorf("expected status 404 in log line: %s", line)
	}
	if !strings.Contains(line, `"level":"warn"`) {
		t.Errorf("4xx should log at warn: %s", line)
	}
}

func TestLoggerPlainErrorIsServerError(t *testing.T) {
	c, _ := newCtx()
	var buf bytes.Buffer
	h := Logger(zerolog.New(&buf))(func(c echo.Context) error {
		return errors.New("pq: connection reset")
	})
	_ = h(c)
	line := buf.String()
	if !strings.Contains(line, `"status":500`) || !strings.Contains(line, `"level":"error"`) {
		t.Errorf("plain error should log 500 at error level: %s", line)
	}
}

func TestSecurityHeadersSet(t *testing.T) {
	c, rec := newCtx()
	h := SecurityHeaders()(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, header := range []string{
		"X-Content-Type-Options", "X-Frame-Options",
		"Content-Security-Policy", "Cache-Control",
	} {
		if rec.Header().Get(header) == "" {
			t.Errorf("missing header %s", header)
		}
	}
}
