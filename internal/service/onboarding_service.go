package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
)

// Health-condition and answer values that drive the profile mode.
const (
	conditionPCOS      = "pcos"
	conditionTTC       = "pregnant_ttc"
	conditionMenopause = "menopause"
)

var cycleLengthAnswers = map[string]int{
	"21-25":     23,
	"26-30":     28,
	"31-35":     33,
	"36-40":     38,
	">40":       42,
	"irregular": 28,
	"unknown":   28,
}

var periodLengthAnswers = map[string]int{
	"2-4":       3,
	"5-7":       5,
	"8+":        8,
	"irregular": 5,
}

// OnboardingStore persists the questionnaire and the profile it updates.
type OnboardingStore interface {
	GetOnboarding(ctx context.Context, userID string) (domain.Onboarding, error)
	UpsertOnboarding(ctx context.Context, o domain.Onboarding) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	RecentCycles(ctx context.Context, userID string, limit int) ([]domain.Cycle, error)
	CreateCycle(ctx context.Context, c domain.Cycle) error
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// OnboardingInput carries the questionnaire answers.
type OnboardingInput struct {
	LastPeriodDate     *time.Time
	TypicalCycleLength string
	PeriodDuration     string
	CycleVariability   string
	HealthConditions   []string
	FertilityTracking  []string
	TrackSymptoms      string
	DynamicPredictions string
	StressLevel        string
	SleepPattern       string
	HealthNotes        string
}

// OnboardingService stores questionnaire answers and derives profile settings.
type OnboardingService struct {
	store OnboardingStore
	nowFn func() time.Time
}

// NewOnboardingService constructs an OnboardingService.
func NewOnboardingService(store OnboardingStore) *OnboardingService {
	return &OnboardingService{store: store, nowFn: time.Now}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *OnboardingService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// Get returns the stored questionnaire. found is false when the user has not
// onboarded yet.
func (s *OnboardingService) Get(ctx context.Context, userID string) (o domain.Onboarding, found bool, err error) {
	o, err = s.store.GetOnboarding(ctx, userID)
	if err != nil {
		if errors.Is(storeErr(err, ""), ErrNotFound) {
			return domain.Onboarding{}, false, nil
		}
		return domain.Onboarding{}, false, err
	}
	return o, true, nil
}

// Save stores the answers, updates the user's averages and records the last
// period as a cycle unless the latest cycle already starts on that day. The
// three writes commit together or not at all.
func (s *OnboardingService) Save(ctx context.Context, userID string, in OnboardingInput) (domain.Onboarding, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return domain.Onboarding{}, storeErr(err, "User not found")
	}
	now := s.nowFn().UTC()

	existing, found, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Onboarding{}, err
	}
	o := domain.Onboarding{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	if found {
		o.ID = existing.ID
		o.CreatedAt = existing.CreatedAt
		o.LastPeriodDate = existing.LastPeriodDate
	}

	if in.LastPeriodDate != nil {
		lmp := cycle.DateOnly(*in.LastPeriodDate)
		o.LastPeriodDate = &lmp
	}
	o.TypicalCycleLength = sanitizeString(in.TypicalCycleLength)
	o.PeriodDuration = sanitizeString(in.PeriodDuration)
	o.CycleVariability = sanitizeString(in.CycleVariability)
	o.HealthConditions = nonNil(in.HealthConditions)
	o.FertilityTracking = nonNil(in.FertilityTracking)
	o.TrackSymptoms = sanitizeString(in.TrackSymptoms)
	o.DynamicPredictions = sanitizeString(in.DynamicPredictions)
	if o.DynamicPredictions == "" {
		o.DynamicPredictions = "yes"
	}
	o.StressLevel = sanitizeString(in.StressLevel)
	o.SleepPattern = sanitizeString(in.SleepPattern)
	o.HealthNotes = truncate(in.HealthNotes, maxNotesLength)

	o.IsIrregular = isIrregular(o)
	o.ProfileMode = profileMode(o)
	o.ShowBufferDays = o.DynamicPredictions != "no"
	o.IsCompleted = true
	o.CompletedAt = &now
	o.UpdatedAt = now

	user.AvgCycleLength = answerOrDefault(cycleLengthAnswers, o.TypicalCycleLength, cycle.DefaultCycleLength)
	user.AvgPeriodLength = answerOrDefault(periodLengthAnswers, o.PeriodDuration, cycle.DefaultPeriodLength)
	user.UpdatedAt = now

	err = s.store.WithTx(ctx, func(ctx context.Context) error {
		if err := s.store.UpsertOnboarding(ctx, o); err != nil {
			return err
		}
		if err := s.store.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("update averages for %s: %w", userID, err)
		}
		if in.LastPeriodDate != nil {
			return s.recordLastPeriod(ctx, user, *o.LastPeriodDate, now)
		}
		return nil
	})
	if err != nil {
		return domain.Onboarding{}, err
	}
	return o, nil
}

func (s *OnboardingService) recordLastPeriod(ctx context.Context, user domain.User, start, now time.Time) error {
	latest, err := s.store.RecentCycles(ctx, user.ID, 1)
	if err != nil {
		return fmt.Errorf("load latest cycle for %s: %w", user.ID, err)
	}
	if len(latest) > 0 && cycle.DateOnly(latest[0].StartDate).Equal(start) {
		return nil
	}
	cycleLength, periodLength := user.AvgCycleLength, user.AvgPeriodLength
	return s.store.CreateCycle(ctx, domain.Cycle{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		StartDate:    start,
		CycleLength:  &cycleLength,
		PeriodLength: &periodLength,
		CreatedAt:    now,
	})
}

func isIrregular(o domain.Onboarding) bool {
	switch {
	case o.CycleVariability == "often" || o.CycleVariability == "always_irregular":
		return true
	case o.TypicalCycleLength == "irregular" || o.TypicalCycleLength == ">40":
		return true
	default:
		return slices.Contains(o.HealthConditions, conditionPCOS)
	}
}

// profileMode picks the mode with precedence ttc, menopause, irregular, regular.
func profileMode(o domain.Onboarding) string {
	switch {
	case slices.Contains(o.HealthConditions, conditionTTC):
		return domain.ProfileModeTTC
	case slices.Contains(o.HealthConditions, conditionMenopause):
		return domain.ProfileModeMenopause
	case o.IsIrregular:
		return domain.ProfileModeIrregular
	default:
		return domain.ProfileModeRegular
	}
}

func answerOrDefault(answers map[string]int, key string, def int) int {
	if v, ok := answers[key]; ok {
		return v
	}
	return def
}

func nonNil(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = sanitizeString(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
