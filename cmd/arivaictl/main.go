// Command arivaictl runs maintenance tasks against the ARIVAI stores:
// schema migration, synthetic data generation, bulk import, content seeding,
// graph projection and one-off reminder runs.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanshika/arivai/internal/config"
	"github.com/vanshika/arivai/internal/database"
	"github.com/vanshika/arivai/internal/graph"
	"github.com/vanshika/arivai/internal/logging"
	"github.com/vanshika/arivai/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the environment is loaded.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "arivaictl",
		Short: "Maintenance tasks for the ARIVAI backend",
		Long: `Maintenance tasks for the ARIVAI backend.

Configuration is read from the environment (and a .env file in the working
directory), the same way the API server reads it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging).With("component", cmd.Name())
			return nil
		},
	}

	root.AddCommand(newMigrateCmd(a))
	root.AddCommand(newDatagenCmd(a))
	root.AddCommand(newIngestCmd(a))
	root.AddCommand(newSeedContentCmd(a))
	root.AddCommand(newProjectGraphCmd(a))
	root.AddCommand(newRemindCmd(a))
	return root
}

// openRepository connects to the configured database and applies the schema.
func (a *app) openRepository(ctx context.Context) (*sql.DB, *repository.Repository, error) {
	db, err := database.Open(ctx, a.cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, repository.New(db), nil
}

// graphClient returns nil when no graph is configured unless required is set.
func (a *app) graphClient(ctx context.Context, required bool) (graph.Client, error) {
	if a.cfg.Graph.URI == "" {
		if required {
			return nil, fmt.Errorf("GRAPH_URI is required: %w", graph.ErrMissingURI)
		}
		return nil, nil
	}
	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            a.cfg.Graph.URI,
		Database:       a.cfg.Graph.Database,
		Username:       a.cfg.Graph.Username,
		Password:       a.cfg.Graph.Password,
		MaxConnections: a.cfg.Graph.MaxConnections,
	})
	if err != nil {
		return nil, err
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}
	a.logger.Info("connected to graph", "uri", a.cfg.Graph.URI, "database", a.cfg.Graph.Database)
	return client, nil
}

func (a *app) closeGraph(client graph.Client) {
	if client == nil {
		return
	}
	if err := client.Close(context.Background()); err != nil {
		a.logger.Warn("closing graph client failed", "error", err)
	}
}
