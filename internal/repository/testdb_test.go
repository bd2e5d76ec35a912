package repository

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/billforge/invoicing-api/internal/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const migrationsDir = "../../scripts/migrations"

// newTestDatabase starts a PostgreSQL container, applies every file in
// scripts/migrations (schema plus seed clients and products) and
// returns a connected PostgresDB. Container and pool are torn down
// when the test finishes.
func newTestDatabase(t *testing.T) *database.PostgresDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("invoicing_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	db, err := database.NewPostgresDB(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	applyTestMigrations(t, db)

	return db
}

// applyTestMigrations executes the migration files in lexical order,
// the same order cmd/migrate applies them.
func applyTestMigrations(t *testing.T, db *database.PostgresDB) {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations found in %s", migrationsDir)
	sort.Strings(files)

	ctx := context.Background()
	for _, file := range files {
		migrationSQL, err := os.ReadFile(file)
		require.NoError(t, err, "failed to read migration %s", file)

		_, err = db.GetPool().Exec(ctx, string(migrationSQL))
		require.NoError(t, err, "failed to apply migration %s", file)
	}
}

func countRows(t *testing.T, db *database.PostgresDB, table string) int {
	t.Helper()

	var n int
	err := db.GetPool().QueryRow(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n)
	require.NoError(t, err)
	return n
}
