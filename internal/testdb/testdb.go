package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/overboard/internal/platform/sqlstore"
	"github.com/phrazzld/overboard/internal/redact"
)

// Environment variables naming a Postgres database for tests, in order of
// preference.
const (
	EnvTestDatabaseURL = "OVERBOARD_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// PostgresURL returns the Postgres URL tests should use, or "" if none is
// configured.
func PostgresURL() string {
	for _, name := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if url := os.Getenv(name); url != "" {
			return url
		}
	}
	return ""
}

// Open returns a migrated database for driver and closes it when the test
// ends. Postgres tests are skipped when no URL is configured.
func Open(t *testing.T, driver string) *sql.DB {
	t.Helper()

	var url string
	switch driver {
	case sqlstore.DriverSQLite:
		url = ":memory:"
	case sqlstore.DriverPostgres:
		url = PostgresURL()
		if url == "" {
			t.Skipf("%s not set - skipping Postgres test", EnvTestDatabaseURL)
		}
	default:
		t.Fatalf("unsupported test database driver %q", driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sqlstore.Open(ctx, driver, url, nil)
	if err != nil {
		t.Fatalf("failed to open %s test database at %s: %s", driver, redact.URL(url), redact.Error(err))
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	if err := sqlstore.Migrate(ctx, db, driver, nil); err != nil {
		t.Fatalf("failed to migrate %s test database: %s", driver, redact.Error(err))
	}
	return db
}

// ForEachDriver runs fn as a subtest against every available database.
func ForEachDriver(t *testing.T, fn func(t *testing.T, db *sql.DB)) {
	t.Helper()
	for _, driver := range []string{sqlstore.DriverSQLite, sqlstore.DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			fn(t, Open(t, driver))
		})
	}
}

// WithTx runs fn inside a transaction that is rolled back afterwards, so
// tests sharing a database do not see each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
