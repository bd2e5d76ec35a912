package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/billforge/invoicing-api/internal/logger"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "scripts/migrations"

func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to migrations directory")
	flag.Parse()

	log := logger.New(logger.Config{Level: "info", Format: "console"})
	defer func() {
		_ = log.Sync()
	}()

	_ = godotenv.Load()
	dbURL := os.Getenv("POSTGRES_DB_URL")
	if dbURL == "" {
		log.Fatal("POSTGRES_DB_URL environment variable is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatal("unable to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := run(ctx, pool, migrationsPath, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}

// run applies every pending .sql file in lexical order, recording each
// applied file in schema_migrations so reruns are no-ops.
func run(ctx context.Context, pool *pgxpool.Pool, migrationsPath string, log *zap.Logger) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %s", migrationsPath)
	}
	sort.Strings(files)

	applied := 0
	for _, file := range files {
		name := filepath.Base(file)

		var exists bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name = $1)`, name).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check migration %s: %w", name, err)
		}
		if exists {
			log.Info("migration already applied, skipping", zap.String("name", name))
			continue
		}

		migrationSQL, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("unable to read migration file %s: %w", name, err)
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for %s: %w", name, err)
		}
		if err := applyMigration(ctx, tx, name, string(migrationSQL)); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", name, err)
		}

		log.Info("migration applied", zap.String("name", name))
		applied++
	}

	log.Info("migrations complete", zap.Int("applied", applied), zap.Int("total", len(files)))
	return nil
}

func applyMigration(ctx context.Context, tx pgx.Tx, name, migrationSQL string) error {
	if _, err := tx.Exec(ctx, migrationSQL); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", name, err)
	}
	return nil
}
