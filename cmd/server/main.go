package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/arivai/internal/auth"
	"github.com/vanshika/arivai/internal/catalog"
	"github.com/vanshika/arivai/internal/config"
	"github.com/vanshika/arivai/internal/database"
	"github.com/vanshika/arivai/internal/graph"
	"github.com/vanshika/arivai/internal/llm"
	"github.com/vanshika/arivai/internal/logging"
	"github.com/vanshika/arivai/internal/reminder"
	"github.com/vanshika/arivai/internal/repository"
	"github.com/vanshika/arivai/internal/server"
	"github.com/vanshika/arivai/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("create graph client: %w", err)
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	model := buildChatModel(ctx, logger, cfg)
	repo := repository.New(db)
	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	svc := buildServices(cfg, logger, repo, graphClient, model, tokens)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           healthChecks(db, graphClient),
		API:              server.NewAPIHandlers(logger, svc),
		Tokens:           tokens,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})
	srv := server.New(logger, cfg.HTTP, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Reminders.Enabled {
		scheduler := reminder.NewScheduler(repo, reminderNotifier(cfg, logger), svc.Insights.Today, logger.With("component", "reminders"))
		g.Go(func() error {
			return scheduler.Run(gctx, cfg.Reminders.Schedule, cfg.Calendar.Location)
		})
	}

	return g.Wait()
}

func buildServices(cfg config.Config, logger *slog.Logger, repo *repository.Repository, graphClient graph.Client, model llm.Client, tokens *auth.TokenManager) server.Services {
	var (
		recorder service.SymptomRecorder
		patterns service.PatternSource
	)
	if graphClient != nil {
		symptoms := graph.NewSymptomGraph(graphClient)
		recorder, patterns = symptoms, symptoms
	}

	content, err := catalog.Default()
	if err != nil {
		logger.Warn("built-in content catalog unavailable", "error", err)
	}

	insights := service.NewInsightsService(repo, cfg.Calendar.Location)
	svc := server.Services{
		Auth:          service.NewAuthService(repo, auth.NewHasher(cfg.Auth.BcryptCost), tokens),
		Profile:       service.NewProfileService(repo, insights),
		Insights:      insights,
		Cycles:        service.NewCycleService(repo, recorder, logger.With("component", "cycles")),
		Patterns:      service.NewPatternService(patterns),
		Chat:          service.NewChatService(repo, insights, model, cfg.LLM.DailyLimit, logger.With("component", "chat")),
		Content:       service.NewContentService(repo, content),
		Favorites:     service.NewFavoriteService(repo),
		Onboarding:    service.NewOnboardingService(repo),
		Export:        service.NewExportService(repo),
		Telegram:      service.NewTelegramLinkService(repo, cfg.Reminders.BotUsername),
		WebhookSecret: cfg.Reminders.WebhookSecret,
	}
	if cfg.Reminders.TelegramToken != "" {
		svc.BotReplies = reminder.NewTelegramNotifier(cfg.Reminders.TelegramToken)
	}
	return svc
}

// buildGraphClient returns nil when no graph is configured; symptom patterns
// are then reported as unavailable.
func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		logger.Info("graph disabled, GRAPH_URI not set")
		return nil, nil
	}

	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	client, err := graph.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("graph client configured", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}

// buildChatModel falls back to scripted replies when Gemini is not configured.
func buildChatModel(ctx context.Context, logger *slog.Logger, cfg config.Config) llm.Client {
	if cfg.LLM.APIKey == "" {
		logger.Info("chat model disabled, GEMINI_API_KEY not set")
		return nil
	}
	client, err := llm.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.RequestTimeout)
	if err != nil {
		logger.Warn("chat model unavailable, using fallback replies", "error", err)
		return nil
	}
	return client
}

func reminderNotifier(cfg config.Config, logger *slog.Logger) reminder.Notifier {
	if cfg.Reminders.TelegramToken == "" {
		logger.Warn("TELEGRAM_BOT_TOKEN not set, reminders will only be logged")
		return reminder.LogNotifier{Logger: logger}
	}
	return reminder.NewTelegramNotifier(cfg.Reminders.TelegramToken)
}

func healthChecks(db *sql.DB, graphClient graph.Client) server.CompositeHealth {
	return server.CompositeHealth{
		{Name: "database", Check: database.HealthCheck{DB: db}},
		{Name: "graph", Check: graph.HealthCheck{Client: graphClient}},
	}
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
