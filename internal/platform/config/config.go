// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first via 'joho/godotenv' when present; real environment variables win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Configuration Schema

// Supported OTP ledger backends.
const (
	OTPStoreMemory = "memory"
	OTPStoreRedis  = "redis"
)

// Supported OTP notifier backends.
const (
	NotifierLog  = "log"
	NotifierAMQP = "amqp"
)

// Config holds all runtime configuration for the Inkwell API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// Pool tuning. Zero values fall back to the postgres package defaults.
	DBMaxConns         int32         `env:"DB_MAX_CONNS"`
	DBMinConns         int32         `env:"DB_MIN_CONNS"`
	DBStatementTimeout time.Duration `env:"DB_STATEMENT_TIMEOUT"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Required only when OTP_STORE=redis.
	RedisURL string `env:"REDIS_URL"`

	// Token signing
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"90m"`

	// AdminEnrollmentCode gates POST /admin/auth/register.
	AdminEnrollmentCode string `env:"ADMIN_ENROLLMENT_CODE,required,notEmpty"`

	// One-time codes
	OTPStore       string `env:"OTP_STORE"        envDefault:"memory"`
	DebugReturnOTP bool   `env:"DEBUG_RETURN_OTP" envDefault:"false"`

	// OTP delivery
	Notifier     string `env:"NOTIFIER"       envDefault:"log"`
	AMQPURL      string `env:"AMQP_URL"`
	AMQPOTPQueue string `env:"AMQP_OTP_QUEUE" envDefault:"inkwell.otp"`

	// Cross-Origin Resource Sharing
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file, then parses environment variables into a
// validated [Config].
func Load() (*Config, error) {

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env: %w", err)
	}

	return Parse()
}

// Parse maps the current environment onto a [Config] without touching .env.
func Parse() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints the struct tags cannot express.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < sec.MinSecretLength {
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes", sec.MinSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive")
	}

	switch c.OTPStore {
	case OTPStoreMemory:
	case OTPStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required when OTP_STORE=redis")
		}
	default:
		return fmt.Errorf("config: unknown OTP_STORE %q", c.OTPStore)
	}

	switch c.Notifier {
	case NotifierLog:
	case NotifierAMQP:
		if c.AMQPURL == "" {
			return fmt.Errorf("config: AMQP_URL is required when NOTIFIER=amqp")
		}
	default:
		return fmt.Errorf("config: unknown NOTIFIER %q", c.Notifier)
	}

	if c.DebugReturnOTP && c.IsProduction() {
		return fmt.Errorf("config: DEBUG_RETURN_OTP cannot be enabled in production")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
