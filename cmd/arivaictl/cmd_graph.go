package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/arivai/internal/auth"
	"github.com/vanshika/arivai/internal/graph"
	"github.com/vanshika/arivai/internal/service"
)

func newProjectGraphCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "project-graph",
		Short: "Replay every stored symptom log into the symptom graph",
		Long: `Rebuild the symptom graph from the SQL store. Writes are idempotent, so
the command can be re-run after a graph outage or a wipe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, err := a.graphClient(ctx, true)
			if err != nil {
				return err
			}
			defer a.closeGraph(client)

			db, repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			importer := service.NewImportService(repo, auth.NewHasher(a.cfg.Auth.BcryptCost), graph.NewSymptomGraph(client))
			start := time.Now()
			projected, err := service.NewBulkIngestor(importer, workers).ReplaySymptoms(ctx)
			a.logger.Info("graph projection finished", "symptoms", projected, "duration", time.Since(start).String())
			if err != nil {
				return fmt.Errorf("graph projection failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 4, "number of concurrent projection workers")
	return cmd
}
