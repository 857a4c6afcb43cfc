// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Inkwell HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Build the credential primitives (Argon2 hasher, HS256 tokens).
//  6. Build the OTP ledger (memory or Redis) and notifier (log or AMQP).
//  7. Wire domain services and the principal directory.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/inkwell/internal/admins/admin"
	"github.com/taibuivan/inkwell/internal/api"
	"github.com/taibuivan/inkwell/internal/catalog/book"
	"github.com/taibuivan/inkwell/internal/identity"
	"github.com/taibuivan/inkwell/internal/otp"
	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	"github.com/taibuivan/inkwell/internal/platform/migration"
	pgstore "github.com/taibuivan/inkwell/internal/platform/postgres"
	redisstore "github.com/taibuivan/inkwell/internal/platform/redis"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/publishers/house"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "inkwell"), slog.String("version", constants.AppVersion))
	slog.SetDefault(log)

	log.Info("[Inkwell] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "inkwell"), slog.String("version", constants.AppVersion))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("otp_store", cfg.OTPStore),
		slog.String("notifier", cfg.Notifier),
	)

	// Background workers (rate limiter eviction, OTP sweeper) stop with this.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.Options{
		MaxConns:         cfg.DBMaxConns,
		MinConns:         cfg.DBMinConns,
		StatementTimeout: cfg.DBStatementTimeout,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Credential Primitives ──────────────────────────────────────────
	hasher := sec.NewHasher(sec.DefaultArgon2Params)
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}

	// ── 6. One-Time Codes ─────────────────────────────────────────────────
	var ledger otp.Ledger
	switch cfg.OTPStore {
	case config.OTPStoreRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		ledger = otp.NewRedisLedger(rdb)
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	default:
		memoryLedger := otp.NewMemoryLedger()
		memoryLedger.StartSweeper(appCtx, constants.OTPSweepInterval)
		ledger = memoryLedger
	}

	var notifier otp.Notifier = otp.NewLogNotifier(log)
	if cfg.Notifier == config.NotifierAMQP {
		amqpNotifier, err := otp.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPOTPQueue)
		must(log, err, "connect to amqp")
		defer func() {
			if cerr := amqpNotifier.Close(); cerr != nil {
				log.Error("amqp_close_error", slog.Any("error", cerr))
			}
		}()
		notifier = amqpNotifier
	}

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	bookService := book.NewService(book.NewPostgresRepository(pool), log)
	authService := auth.NewService(auth.NewUserRepository(pool), bookService, hasher, tokens, cfg.TokenTTL, log)
	houseService := house.NewService(house.NewPostgresRepository(pool), hasher, tokens, cfg.TokenTTL, log)
	adminService := admin.NewService(admin.NewPostgresRepository(pool), hasher, tokens, cfg.TokenTTL, cfg.AdminEnrollmentCode, log)
	otpService := otp.NewService(ledger, notifier, authService, log, cfg.DebugReturnOTP)

	// The token's entity_type claim picks exactly one credential store.
	authenticator := identity.NewAuthenticator(tokens, identity.Directory{
		sec.EntityUser:      authService,
		sec.EntityPublisher: houseService,
		sec.EntityAdmin:     adminService,
	})

	liveness, readiness := api.NewHealthHandlers(health, log)
	otpLimiter := middleware.NewRateLimiter(appCtx, constants.OTPRateLimitRPS, constants.OTPRateLimitBurst)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, authenticator),
		OTP:       otp.NewHandler(otpService, otpLimiter.Handler),
		Publisher: house.NewHandler(houseService, authenticator),
		Admin:     admin.NewHandler(adminService, authenticator),
		Book:      book.NewHandler(bookService, authenticator),
	}

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(appCtx, cfg, log, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		appCancel()
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
