package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"codezetta/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const createMigrationsTable = `CREATE TABLE schema_migrations (
    version    NUMBER(19) PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL
)`

// RunMigrations applies every embedded migration newer than the recorded
// schema version and returns the resulting version.
func RunMigrations(ctx context.Context, db *sqlx.DB) (uint, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return 0, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	defer src.Close()
	return applyMigrations(ctx, db, src)
}

// CurrentVersion reports the highest applied migration, 0 when none ran.
func CurrentVersion(ctx context.Context, db *sqlx.DB) (uint, error) {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return 0, err
	}
	var version int64
	if err := db.GetContext(ctx, &version, `SELECT NVL(MAX(version), 0) FROM schema_migrations`); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return uint(version), nil
}

func applyMigrations(ctx context.Context, db *sqlx.DB, src source.Driver) (uint, error) {
	current, err := CurrentVersion(ctx, db)
	if err != nil {
		return 0, err
	}

	version, err := src.First()
	for err == nil {
		if version > current {
			if applyErr := applyOne(ctx, db, src, version); applyErr != nil {
				return current, applyErr
			}
			current = version
		}
		version, err = src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return current, fmt.Errorf("failed to walk migrations: %w", err)
	}

	logger.Get().Info("Migrations completed successfully", zap.Uint("version", current))
	return current, nil
}

func applyOne(ctx context.Context, db *sqlx.DB, src source.Driver, version uint) error {
	r, name, err := src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("failed to read migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("failed to read migration %d: %w", version, err)
	}

	for _, stmt := range splitStatements(string(body)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %d_%s: %w", version, name, err)
		}
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (:1)`, int64(version)); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", version, err)
	}

	logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", name))
	return nil
}

func ensureMigrationsTable(ctx context.Context, db *sqlx.DB) error {
	var count int
	err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`)
	if err != nil {
		return fmt.Errorf("failed to check schema_migrations table: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

// splitStatements breaks a migration file into single statements. Oracle
// rejects a trailing semicolon and more than one statement per call.
func splitStatements(body string) []string {
	var stmts []string
	for _, part := range strings.Split(body, ";") {
		stmt := strings.TrimSpace(part)
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
