package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/apperr"
)

var testKey = []byte("test-signing-key")

func signedToken(t *testing.T, claims *Claims) string {
	t.Helper()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(testKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func testContext(headers map[string]string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func adminClaims(subject string) *Claims {
	c := &Claims{Role: RoleAdmin}
	c.Subject = subject
	return c
}

func TestBearerMissingHeader(t *testing.T) {
	a := &BearerAuthenticator{KeyFunc: HMACKeyFunc(testKey)}
	_, err := a.Authenticate(testContext(nil))
	if !errors.Is(err, apperr.ErrMissingCredential) {
		t.Fatalf("expected missing credential, got %v", err)
	}
}

func TestBearerMissingTokenSegment(t *testing.T) {
	a := &BearerAuthenticator{KeyFunc: HMACKeyFunc(testKey)}
	_, err := a.Authenticate(testContext(map[string]string{"Authorization": "Bearer"}))
	if !errors.Is(err, apperr.ErrMissingCredential) {
		t.Fatalf("expected missing credential, got %v", err)
	}
}

func TestBearerGarbageToken(t *testing.T) {
	a := &BearerAuthenticator{KeyFunc: HMACKeyFunc(testKey)}
	_, err := a.Authenticate(testContext(map[string]string{"Authorization": "Bearer not.a.token"}))
	if !errors.Is(err, apperr.ErrMalformedCredential) {
		t.Fatalf("expected malformed credential, got %v", err)
	}
}

func TestBearerValidToken(t *testing.T) {
	a := &BearerAuthenticator{KeyFunc: HMACKeyFunc(testKey)}
	token := signedToken(t, adminClaims("hospital-1"))
	claims, err := a.Authenticate(testContext(map[string]string{"Authorization": "Bearer " + token}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID() != "hospital-1" || claims.Role != RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestBearerRejectsWrongKey(t *testing.T) {
	a := &BearerAuthenticator{KeyFunc: HMACKeyFunc([]byte("other-key"))}
	token := signedToken(t, adminClaims("hospital-1"))
	_, err := a.Authenticate(testContext(map[string]string{"Authorization": "Bearer " + token}))
	if !errors.Is(err, apperr.ErrMalformedCredential) {
		t.Fatalf("expected malformed credential, got %v", err)
	}
}

func TestBearerRejectsUnknownRole(t *testing.T) {
	a := &BearerAuthenticator{KeyFunc: HMACKeyFunc(testKey)}
	c := &Claims{Role: Role("janitor")}
	c.Subject = "u1"
	token := signedToken(t, c)
	_, err := a.Authenticate(testContext(map[string]string{"Authorization": "Bearer " + token}))
	if !errors.Is(err, apperr.ErrMalformedCredential) {
		t.Fatalf("expected malformed credential, got %v", err)
	}
}

func TestBearerAdminTenantDefaultsToSubject(t *testing.T) {
	a := &BearerAuthenticator{KeyFunc: HMACKeyFunc(testKey)}
	token := signedToken(t, adminClaims("a7e9c6aa-0000-0000-0000-000000000001"))
	claims, err := a.Authenticate(testContext(map[string]string{"Authorization": "Bearer " + token}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.TenantID != claims.Subject {
		t.Errorf("tenant id = %q, want subject %q", claims.TenantID, claims.Subject)
	}
}

func TestInsecureModeSkipsVerification(t *testing.T) {
	// Token signed with an arbitrary key still decodes in insecure mode.
	c := adminClaims("hospital-1")
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	s, _ := token.SignedString([]byte("whatever"))

	a := &BearerAuthenticator{Insecure: true}
	claims, err := a.Authenticate(testContext(map[string]string{"Authorization": "Bearer " + s}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID() != "hospital-1" {
		t.Errorf("unexpected subject: %s", claims.UserID())
	}
}

type fakeRevoker struct{ revoked map[string]bool }

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

func TestBearerRevokedToken(t *testing.T) {
	c := adminClaims("hospital-1")
	c.ID = "jti-1"
	token := signedToken(t, c)
	a := &BearerAuthenticator{
		KeyFunc: HMACKeyFunc(testKey),
		Revoker: &fakeRevoker{revoked: map[string]bool{"jti-1": true}},
	}
	_, err := a.Authenticate(testContext(map[string]string{"Authorization": "Bearer " + token}))
	if !errors.Is(err, apperr.ErrMalformedCredential) {
		t.Fatalf("expected malformed credential for revoked token, got %v", err)
	}
}

type fakeResolver struct{ byEmail map[string]*Principal }

func (f *fakeResolver) ResolveByEmail(_ context.Context, email string) (*Principal, error) {
	p, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func TestEmailHeaderMissing(t *testing.T) {
	a := &EmailHeaderAuthenticator{Resolver: &fakeResolver{}}
	_, err := a.Authenticate(testContext(nil))
	if !errors.Is(err, apperr.ErrMissingCredential) {
		t.Fatalf("expected missing credential, got %v", err)
	}
}

func TestEmailHeaderUnknownIdentity(t *testing.T) {
	a := &EmailHeaderAuthenticator{Resolver: &fakeResolver{}}
	_, err := a.Authenticate(testContext(map[string]string{HeaderUserEmail: "ghost@example.com"}))
	if !errors.Is(err, apperr.ErrMalformedCredential) {
		t.Fatalf("expected malformed credential, got %v", err)
	}
}

func TestEmailHeaderResolvesPrincipal(t *testing.T) {
	a := &EmailHeaderAuthenticator{Resolver: &fakeResolver{byEmail: map[string]*Principal{
		"admin@cityhospital.example": {ID: "h1", Role: RoleAdmin, Email: "admin@cityhospital.example"},
	}}}
	claims, err := a.Authenticate(testContext(map[string]string{HeaderUserEmail: "admin@cityhospital.example"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Role != RoleAdmin || claims.TenantID != "h1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestMiddlewareInstallsClaims(t *testing.T) {
	a := &BearerAuthenticator{KeyFunc: HMACKeyFunc(testKey)}
	token := signedToken(t, adminClaims("hospital-1"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Middleware(a)(func(c echo.Context) error {
		called = true
		if ClaimsFromContext(c.Request().Context()) == nil {
			t.Error("claims not installed in request context")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("next handler not called")
	}
}

func TestMiddlewareRejectsWith401(t *testing.T) {
	a := &BearerAuthenticator{KeyFunc: HMACKeyFunc(testKey)}
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	handler := Middleware(a)(func(c echo.Context) error { return nil })
	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
