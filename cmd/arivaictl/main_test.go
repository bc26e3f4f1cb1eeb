package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/arivai/internal/config"
	"github.com/vanshika/arivai/internal/database"
	"github.com/vanshika/arivai/internal/domain"
	"github.com/vanshika/arivai/internal/repository"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dsn := filepath.Join(dir, "arivai.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", dsn)
	t.Setenv("DATABASE_PUBLIC_URL", "")
	t.Setenv("GRAPH_URI", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func openRepo(t *testing.T, dsn string) *repository.Repository {
	t.Helper()
	db, err := database.Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.New(db)
}

func TestDatagenIngestAndSeed(t *testing.T) {
	dir := setupEnv(t)
	dataDir := filepath.Join(dir, "data")

	_, err := execute(t, "datagen", "--users", "5", "--cycles", "3", "--symptoms", "2", "--until", "2024-03-10", "--output-dir", dataDir)
	require.NoError(t, err)

	_, err = execute(t, "ingest", "--dataset-dir", dataDir, "--workers", "2")
	require.NoError(t, err)

	// a second run skips every user instead of failing
	_, err = execute(t, "ingest", "--dataset-dir", dataDir)
	require.NoError(t, err)

	_, err = execute(t, "seed-content")
	require.NoError(t, err)

	repo := openRepo(t, filepath.Join(dir, "arivai.db"))
	ctx := context.Background()

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	cycles, err := repo.ListCycles(ctx, "USR-000001")
	require.NoError(t, err)
	assert.Len(t, cycles, 3)

	recipes, err := repo.ListRecipes(ctx, domain.ContentFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, recipes)
}

func TestDatagenToStdout(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "datagen", "--users", "2", "--stdout", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, `"email"`)
	assert.Contains(t, out, `"cycles"`)
}

func TestIngestMissingDataset(t *testing.T) {
	dir := setupEnv(t)

	_, err := execute(t, "ingest", "--dataset-dir", filepath.Join(dir, "nope"))
	assert.ErrorIs(t, err, errMissingDataset)
}

func TestProjectGraphRequiresGraph(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "project-graph")
	assert.ErrorContains(t, err, "GRAPH_URI is required")
}

func TestRemindDryRun(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "migrate")
	require.NoError(t, err)

	_, err = execute(t, "remind", "--dry-run", "--date", "2024-03-10")
	assert.NoError(t, err)

	_, err = execute(t, "remind")
	assert.ErrorContains(t, err, "TELEGRAM_BOT_TOKEN is required")
}
