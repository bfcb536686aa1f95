package config

import "testing"

func TestValidateBearerNeedsKeyMaterial(t *testing.T) {
	cfg := &Config{AuthMode: AuthModeBearer}
	if err := cfg.Validate(); err == nil {
		t.Fatal("bearer mode without signing key or JWKS URL must be rejected")
	}

	cfg.AuthSigningKey = "dev-key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg = &Config{AuthMode: AuthModeBearer, AuthJWKSURL: "https://issuer/.well-known/jwks.json"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateInsecureRefusedInProduction(t *testing.T) {
	cfg := &Config{AuthMode: AuthModeInsecure, Env: "production"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("insecure mode must be refused in production")
	}

	cfg.Env = "development"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := &Config{AuthMode: "oauth-dance"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown auth mode must be rejected")
	}
}

func TestValidateEmailHeaderMode(t *testing.T) {
	cfg := &Config{AuthMode: AuthModeEmailHeader}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
