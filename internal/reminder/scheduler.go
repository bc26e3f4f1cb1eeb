package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vanshika/arivai/internal/domain"
)

// TargetStore lists the users that can receive reminders.
type TargetStore interface {
	ListReminderTargets(ctx context.Context) ([]domain.ReminderTarget, error)
}

// Stats summarises one daily run.
type Stats struct {
	Targets int
	Sent    int
	Failed  int
}

// Scheduler runs the daily reminder job on a cron schedule.
type Scheduler struct {
	store    TargetStore
	notifier Notifier
	today    func() time.Time
	logger   *slog.Logger
}

// NewScheduler constructs a Scheduler. today returns the current calendar date.
func NewScheduler(store TargetStore, notifier Notifier, today func() time.Time, logger *slog.Logger) *Scheduler {
	if today == nil {
		today = func() time.Time { return time.Now() }
	}
	return &Scheduler{store: store, notifier: notifier, today: today, logger: logger}
}

// RunDaily sends today's reminders. Delivery failures are logged and counted
// but do not stop the run.
func (s *Scheduler) RunDaily(ctx context.Context) (Stats, error) {
	targets, err := s.store.ListReminderTargets(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load reminder targets: %w", err)
	}
	today := s.today()
	stats := Stats{Targets: len(targets)}
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		r, ok := Due(t, today)
		if !ok {
			continue
		}
		if err := s.notifier.Notify(ctx, r.ChatID, r.Text); err != nil {
			stats.Failed++
			s.logger.WarnContext(ctx, "reminder delivery failed", "user_id", r.UserID, "kind", r.Kind, "error", err)
			continue
		}
		stats.Sent++
	}
	return stats, nil
}

// Run schedules RunDaily with spec in loc and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, spec string, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(spec, func() {
		stats, err := s.RunDaily(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "daily reminders failed", "error", err)
			return
		}
		s.logger.InfoContext(ctx, "daily reminders sent",
			"targets", stats.Targets, "sent", stats.Sent, "failed", stats.Failed)
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	s.logger.Info("reminder scheduler started", "schedule", spec, "location", loc.String())
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("reminder scheduler stopped")
	return nil
}
