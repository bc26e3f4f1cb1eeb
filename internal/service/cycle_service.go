package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
	"github.com/vanshika/arivai/internal/graph"
)

const (
	minSeverity     = 1
	maxSeverity     = 5
	defaultSeverity = 1
)

// CycleStore persists cycles and symptom logs.
type CycleStore interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
	ListCycles(ctx context.Context, userID string) ([]domain.Cycle, error)
	GetCycle(ctx context.Context, userID, id string) (domain.Cycle, error)
	CreateCycle(ctx context.Context, c domain.Cycle) error
	UpdateCycle(ctx context.Context, c domain.Cycle) error
	ListSymptoms(ctx context.Context, userID string, day *time.Time) ([]domain.Symptom, error)
	CreateSymptom(ctx context.Context, s domain.Symptom) error
}

// SymptomRecorder projects symptom logs into the symptom graph.
type SymptomRecorder interface {
	RecordSymptom(ctx context.Context, ev graph.SymptomEvent) error
}

// CycleInput creates a cycle.
type CycleInput struct {
	StartDate    *time.Time
	EndDate      *time.Time
	CycleLength  *int
	PeriodLength *int
	Notes        string
}

// CyclePatch edits a cycle. Nil fields are left unchanged; ClearEndDate
// removes the end date.
type CyclePatch struct {
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
	CycleLength  *int
	PeriodLength *int
	Notes        *string
}

// SymptomInput logs a symptom.
type SymptomInput struct {
	Date        *time.Time
	SymptomType string
	Severity    *int
	CycleID     string
	Notes       string
}

// CycleService manages cycle and symptom logs.
type CycleService struct {
	store  CycleStore
	graph  SymptomRecorder
	logger *slog.Logger
	nowFn  func() time.Time
}

// NewCycleService constructs a CycleService. recorder may be nil when no
// symptom graph is configured.
func NewCycleService(store CycleStore, recorder SymptomRecorder, logger *slog.Logger) *CycleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CycleService{store: store, graph: recorder, logger: logger, nowFn: time.Now}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *CycleService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// ListCycles returns the user's cycles, most recent first.
func (s *CycleService) ListCycles(ctx context.Context, userID string) ([]domain.Cycle, error) {
	return s.store.ListCycles(ctx, userID)
}

// CreateCycle validates and stores a new cycle.
func (s *CycleService) CreateCycle(ctx context.Context, userID string, in CycleInput) (domain.Cycle, error) {
	if in.StartDate == nil {
		return domain.Cycle{}, invalidf("startDate is required")
	}
	c := domain.Cycle{
		ID:           uuid.NewString(),
		UserID:       userID,
		StartDate:    cycle.DateOnly(*in.StartDate),
		EndDate:      dateOnlyPtr(in.EndDate),
		CycleLength:  in.CycleLength,
		PeriodLength: in.PeriodLength,
		Notes:        truncate(in.Notes, maxNotesLength),
		CreatedAt:    s.nowFn().UTC(),
	}
	if err := validateCycle(c); err != nil {
		return domain.Cycle{}, err
	}
	if err := s.store.CreateCycle(ctx, c); err != nil {
		return domain.Cycle{}, err
	}
	return c, nil
}

// UpdateCycle applies patch to a cycle owned by userID.
func (s *CycleService) UpdateCycle(ctx context.Context, userID, id string, patch CyclePatch) (domain.Cycle, error) {
	c, err := s.store.GetCycle(ctx, userID, id)
	if err != nil {
		return domain.Cycle{}, storeErr(err, "Cycle not found")
	}
	if patch.StartDate != nil {
		c.StartDate = cycle.DateOnly(*patch.StartDate)
	}
	switch {
	case patch.ClearEndDate:
		c.EndDate = nil
	case patch.EndDate != nil:
		c.EndDate = dateOnlyPtr(patch.EndDate)
	}
	if patch.CycleLength != nil {
		c.CycleLength = patch.CycleLength
	}
	if patch.PeriodLength != nil {
		c.PeriodLength = patch.PeriodLength
	}
	if patch.Notes != nil {
		c.Notes = truncate(*patch.Notes, maxNotesLength)
	}
	if err := validateCycle(c); err != nil {
		return domain.Cycle{}, err
	}
	if err := s.store.UpdateCycle(ctx, c); err != nil {
		return domain.Cycle{}, storeErr(err, "Cycle not found")
	}
	return c, nil
}

// ListSymptoms returns symptom logs, optionally restricted to one day.
func (s *CycleService) ListSymptoms(ctx context.Context, userID string, day *time.Time) ([]domain.Symptom, error) {
	return s.store.ListSymptoms(ctx, userID, dateOnlyPtr(day))
}

// LogSymptom stores a symptom and projects it into the symptom graph.
func (s *CycleService) LogSymptom(ctx context.Context, userID string, in SymptomInput) (domain.Symptom, error) {
	if in.Date == nil {
		return domain.Symptom{}, invalidf("date is required")
	}
	symptomType := symptomKey(in.SymptomType)
	if symptomType == "" {
		return domain.Symptom{}, invalidf("symptomType is required")
	}
	if len(symptomType) > maxSymptomTypeLength {
		return domain.Symptom{}, invalidf("symptomType must be at most %d characters", maxSymptomTypeLength)
	}
	severity := defaultSeverity
	if in.Severity != nil {
		severity = *in.Severity
	}
	if severity < minSeverity || severity > maxSeverity {
		return domain.Symptom{}, invalidf("severity must be between %d and %d", minSeverity, maxSeverity)
	}
	if in.CycleID != "" {
		if _, err := s.store.GetCycle(ctx, userID, in.CycleID); err != nil {
			return domain.Symptom{}, storeErr(err, "Cycle not found")
		}
	}

	sym := domain.Symptom{
		ID:          uuid.NewString(),
		UserID:      userID,
		CycleID:     in.CycleID,
		Date:        cycle.DateOnly(*in.Date),
		SymptomType: symptomType,
		Severity:    severity,
		Notes:       truncate(in.Notes, maxNotesLength),
		CreatedAt:   s.nowFn().UTC(),
	}
	if err := s.store.CreateSymptom(ctx, sym); err != nil {
		return domain.Symptom{}, err
	}

	s.project(ctx, sym)
	return sym, nil
}

// project writes sym to the graph. Failures are logged; the relational
// store stays authoritative and project-graph can replay later.
func (s *CycleService) project(ctx context.Context, sym domain.Symptom) {
	if s.graph == nil {
		return
	}
	ev, err := s.symptomEvent(ctx, sym)
	if err != nil {
		s.logger.Warn("symptom phase lookup failed", "symptom_id", sym.ID, "error", err)
		return
	}
	if err := s.graph.RecordSymptom(ctx, ev); err != nil {
		s.logger.Warn("symptom graph projection failed", "symptom_id", sym.ID, "error", err)
	}
}

func (s *CycleService) symptomEvent(ctx context.Context, sym domain.Symptom) (graph.SymptomEvent, error) {
	user, err := s.store.GetUser(ctx, sym.UserID)
	if err != nil {
		return graph.SymptomEvent{}, fmt.Errorf("load user %s: %w", sym.UserID, err)
	}
	cycles, err := s.store.ListCycles(ctx, sym.UserID)
	if err != nil {
		return graph.SymptomEvent{}, fmt.Errorf("list cycles for %s: %w", sym.UserID, err)
	}
	return tagSymptom(sym, cycleProfile(user), cycleRecords(cycles)), nil
}

// tagSymptom places sym in the cycle it fell in. Symptoms logged before any
// cycle keep an empty phase.
func tagSymptom(sym domain.Symptom, profile cycle.Profile, records []cycle.Record) graph.SymptomEvent {
	ev := graph.SymptomEvent{
		SymptomID:   sym.ID,
		UserID:      sym.UserID,
		SymptomType: sym.SymptomType,
		Severity:    sym.Severity,
		Date:        sym.Date,
	}
	if phase, day, ok := cycle.PhaseOn(profile, records, sym.Date); ok {
		ev.Phase = string(phase)
		ev.CycleDay = day
	}
	return ev
}

func validateCycle(c domain.Cycle) error {
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return invalidf("endDate cannot be before startDate")
	}
	if c.CycleLength != nil && *c.CycleLength <= 0 {
		return invalidf("cycleLength must be positive")
	}
	if c.PeriodLength != nil && *c.PeriodLength <= 0 {
		return invalidf("periodLength must be positive")
	}
	return nil
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := cycle.DateOnly(*t)
	return &d
}
