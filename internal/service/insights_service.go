package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
)

// recentCycleLimit bounds how many cycles feed the menopause indicator.
const recentCycleLimit = 6

// InsightsStore loads the inputs of the cycle engine.
type InsightsStore interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
	RecentCycles(ctx context.Context, userID string, limit int) ([]domain.Cycle, error)
}

// InsightsService computes cycle insights for stored users.
type InsightsService struct {
	store InsightsStore
	loc   *time.Location
	nowFn func() time.Time
}

// NewInsightsService constructs an InsightsService. "Today" is the calendar
// date in loc; nil means UTC.
func NewInsightsService(store InsightsStore, loc *time.Location) *InsightsService {
	if loc == nil {
		loc = time.UTC
	}
	return &InsightsService{store: store, loc: loc, nowFn: time.Now}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *InsightsService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// Today returns the current calendar date in the configured timezone as UTC midnight.
func (s *InsightsService) Today() time.Time {
	now := s.nowFn().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ForUser computes today's insights for userID.
func (s *InsightsService) ForUser(ctx context.Context, userID string) (cycle.Insights, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return cycle.Insights{}, storeErr(err, "User not found")
	}
	return s.forUser(ctx, user)
}

func (s *InsightsService) forUser(ctx context.Context, user domain.User) (cycle.Insights, error) {
	cycles, err := s.store.RecentCycles(ctx, user.ID, recentCycleLimit)
	if err != nil {
		return cycle.Insights{}, fmt.Errorf("load recent cycles for %s: %w", user.ID, err)
	}
	records := cycleRecords(cycles)
	profile := cycleProfile(user)

	var latest *cycle.Record
	if len(records) > 0 {
		latest = &records[0]
	}
	insights, ok := cycle.ComputeInsights(&profile, latest, cycle.RecentCycleLengths(records), s.Today())
	if !ok {
		return cycle.Insights{}, notFoundf("User not found")
	}
	return insights, nil
}

// Pregnancy computes the gestational timeline for a last menstrual period.
func (s *InsightsService) Pregnancy(lmp time.Time) (cycle.Pregnancy, error) {
	lmp = cycle.DateOnly(lmp)
	today := s.Today()
	if lmp.After(today) {
		return cycle.Pregnancy{}, invalidf("lmp cannot be in the future")
	}
	return cycle.PregnancyTimeline(lmp, today), nil
}

func cycleProfile(u domain.User) cycle.Profile {
	p := cycle.Profile{
		DateOfBirth:     u.DateOfBirth,
		AvgCycleLength:  u.AvgCycleLength,
		AvgPeriodLength: u.AvgPeriodLength,
	}
	if p.AvgCycleLength <= 0 {
		p.AvgCycleLength = cycle.DefaultCycleLength
	}
	if p.AvgPeriodLength <= 0 {
		p.AvgPeriodLength = cycle.DefaultPeriodLength
	}
	return p
}

func cycleRecords(cycles []domain.Cycle) []cycle.Record {
	records := make([]cycle.Record, 0, len(cycles))
	for _, c := range cycles {
		records = append(records, cycle.Record{
			StartDate:    c.StartDate,
			EndDate:      c.EndDate,
			CycleLength:  c.CycleLength,
			PeriodLength: c.PeriodLength,
		})
	}
	return records
}
