package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Auth modes. Exactly one authentication scheme runs per process; routes
// never pick their own.
const (
	AuthModeBearer      = "bearer"       // verified JWT (HMAC key or JWKS)
	AuthModeEmailHeader = "email-header" // legacy X-User-Email lookup
	AuthModeInsecure    = "insecure"     // unverified claims parsing, test rigs only
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	AuthMode    string `mapstructure:"AUTH_MODE"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	AuthSigningKey string `mapstructure:"AUTH_SIGNING_KEY"`
	AuthJWKSURL    string `mapstructure:"AUTH_JWKS_URL"`

	RedisURL      string `mapstructure:"REDIS_URL"`
	AMQPURL       string `mapstructure:"AMQP_URL"`
	NotifyQueue   string `mapstructure:"NOTIFY_QUEUE"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("AUTH_MODE", AuthModeBearer)
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("NOTIFY_QUEUE", "careloop.notifications")
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	for _, key := range []string{
		"PORT", "ENV", "AUTH_MODE", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"AUTH_SIGNING_KEY", "AUTH_JWKS_URL", "REDIS_URL", "AMQP_URL",
		"NOTIFY_QUEUE", "MIGRATIONS_DIR", "CORS_ORIGINS",
	} {
		v.BindEnv(key)
	}

	// .env is optional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.AuthMode == AuthModeInsecure {
		log.Println("WARNING: ==========================================================")
		log.Println("WARNING: AUTH_MODE=insecure — credentials are parsed WITHOUT")
		log.Println("WARNING: signature verification. Any caller can forge any identity.")
		log.Println("WARNING: This mode exists for test rigs only.")
		log.Println("WARNING: ==========================================================")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate refuses configurations that cannot authenticate safely.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeBearer:
		if c.AuthSigningKey == "" && c.AuthJWKSURL == "" {
			return fmt.Errorf("AUTH_MODE=bearer requires AUTH_SIGNING_KEY or AUTH_JWKS_URL")
		}
	case AuthModeEmailHeader:
		// principal lookup only, nothing further to configure
	case AuthModeInsecure:
		if c.IsProduction() {
			return fmt.Errorf("AUTH_MODE=insecure is not allowed when ENV=production")
		}
	default:
		return fmt.Errorf("AUTH_MODE must be %q, %q, or %q, got %q",
			AuthModeBearer, AuthModeEmailHeader, AuthModeInsecure, c.AuthMode)
	}
	return nil
}
