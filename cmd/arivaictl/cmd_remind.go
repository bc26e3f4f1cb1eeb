package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/arivai/internal/reminder"
	"github.com/vanshika/arivai/internal/service"
)

func newRemindCmd(a *app) *cobra.Command {
	var (
		dryRun bool
		date   string
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send today's Telegram reminders once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			today := service.NewInsightsService(repo, a.cfg.Calendar.Location).Today
			if date != "" {
				t, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				today = func() time.Time { return t }
			}

			var notifier reminder.Notifier = reminder.LogNotifier{Logger: a.logger}
			if !dryRun {
				if a.cfg.Reminders.TelegramToken == "" {
					return fmt.Errorf("TELEGRAM_BOT_TOKEN is required unless --dry-run is set")
				}
				notifier = reminder.NewTelegramNotifier(a.cfg.Reminders.TelegramToken)
			}

			stats, err := reminder.NewScheduler(repo, notifier, today, a.logger).RunDaily(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("reminders sent", "targets", stats.Targets, "sent", stats.Sent, "failed", stats.Failed)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&dryRun, "dry-run", false, "log reminders instead of sending them")
	flags.StringVar(&date, "date", "", "treat this date (YYYY-MM-DD) as today")
	return cmd
}
