package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/arivai/internal/auth"
	"github.com/vanshika/arivai/internal/generator"
	"github.com/vanshika/arivai/internal/graph"
	"github.com/vanshika/arivai/internal/service"
)

var errMissingDataset = errors.New("dataset not found")

func newIngestCmd(a *app) *cobra.Command {
	var (
		datasetDir string
		usersPath  string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Import users.json into the database",
		Long: `Import a users.json file produced by datagen (or an export of the
same shape). Users whose email is already registered are skipped. When
GRAPH_URI is set, each imported symptom is also projected into the graph.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			path, err := resolveDatasetPath(datasetDir, usersPath)
			if err != nil {
				return err
			}
			dataset, err := generator.ReadDataset(path)
			if err != nil {
				return err
			}
			if len(dataset.Users) == 0 {
				return fmt.Errorf("users dataset empty: %s", path)
			}

			db, repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			client, err := a.graphClient(ctx, false)
			if err != nil {
				return err
			}
			defer a.closeGraph(client)

			var recorder service.SymptomRecorder
			if client != nil {
				recorder = graph.NewSymptomGraph(client)
			}
			importer := service.NewImportService(repo, auth.NewHasher(a.cfg.Auth.BcryptCost), recorder)
			ingestor := service.NewBulkIngestor(importer, workers)

			start := time.Now()
			a.logger.Info("ingesting users", "count", len(dataset.Users), "workers", workers)
			stats, err := ingestor.IngestUsers(ctx, dataset.Users)
			a.logger.Info("ingestion finished",
				"duration", time.Since(start).String(),
				"imported", stats.Imported,
				"skipped", stats.Skipped)
			if err != nil {
				return fmt.Errorf("user ingestion failed: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&datasetDir, "dataset-dir", "./data", "directory containing users.json")
	flags.StringVar(&usersPath, "users", "", "path to users.json (overrides --dataset-dir)")
	flags.IntVar(&workers, "workers", 4, "number of concurrent import workers")
	return cmd
}

func resolveDatasetPath(baseDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("stat %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}
	path := filepath.Join(baseDir, generator.UsersFile)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", errMissingDataset, path)
	}
	return path, nil
}
