// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under data/migrations with
// golang-migrate before the API starts serving.
//
// The identity schema must exist before any login can succeed, so a failed or
// dirty migration aborts startup instead of degrading.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// registers the "pgx5" database scheme
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// registers the "file" source scheme
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Result reports what a run did.
type Result struct {
	From    uint
	To      uint
	Applied bool
}

// RunUp applies all pending UP migrations from migrationsPath.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+migrationsPath, Pgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
			logger.Warn("migration_close_failed",
				slog.Any("source_error", sourceErr),
				slog.Any("database_error", dbErr),
			)
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	result, err := up(migrator)
	if err != nil {
		return err
	}

	if !result.Applied {
		logger.Info("migration_already_up_to_date", slog.Uint64("version", uint64(result.To)))
		return nil
	}

	logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(result.From)),
		slog.Uint64("to_version", uint64(result.To)),
	)
	return nil
}

// up refuses to touch a dirty database; a half-applied identity migration
// needs an operator.
func up(migrator *migrate.Migrate) (Result, error) {
	from, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return Result{}, fmt.Errorf("migration: failed to read version: %w", err)
	}
	if dirty {
		return Result{}, fmt.Errorf("migration: database is dirty at version %d", from)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return Result{From: from, To: from}, nil
		}
		return Result{}, fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, err := migrator.Version()
	if err != nil {
		return Result{}, fmt.Errorf("migration: failed to read version: %w", err)
	}
	return Result{From: from, To: to, Applied: true}, nil
}

// Pgx5DSN rewrites a postgres:// or postgresql:// URL to the pgx5:// scheme
// the migrate driver registers. Other inputs are returned unchanged.
func Pgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger forwards golang-migrate progress to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

// Verbose implements migrate.Logger. Per-file lines are only produced when
// debug logging is on.
func (l *migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
