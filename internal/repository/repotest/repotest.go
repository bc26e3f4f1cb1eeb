// Package repotest provides a migrated SQLite-backed repository for tests.
package repotest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vanshika/arivai/internal/config"
	"github.com/vanshika/arivai/internal/database"
	"github.com/vanshika/arivai/internal/repository"
)

// New opens a fresh SQLite database in a temporary directory, applies the
// schema and closes it when the test finishes.
func New(tb testing.TB) *repository.Repository {
	tb.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(tb.TempDir(), "arivai-test.db"),
	})
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(ctx, db); err != nil {
		tb.Fatalf("migrate test database: %v", err)
	}
	return repository.New(db)
}
