package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vanshika/arivai/internal/auth"
	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
	"github.com/vanshika/arivai/internal/repository"
)

// CycleImport is one historical cycle in an import file.
type CycleImport struct {
	ID           string     `json:"id"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	CycleLength  *int       `json:"cycleLength,omitempty"`
	PeriodLength *int       `json:"periodLength,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// SymptomImport is one historical symptom log in an import file.
type SymptomImport struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	SymptomType string    `json:"symptomType"`
	Severity    int       `json:"severity"`
	Notes       string    `json:"notes,omitempty"`
}

// UserImport is an account with its history, as produced by the generator.
type UserImport struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	DateOfBirth     *time.Time      `json:"dateOfBirth,omitempty"`
	AvgCycleLength  int             `json:"avgCycleLength"`
	AvgPeriodLength int             `json:"avgPeriodLength"`
	Cycles          []CycleImport   `json:"cycles"`
	Symptoms        []SymptomImport `json:"symptoms"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
}

// ImportStore is the storage used by bulk import and graph replay.
type ImportStore interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	ListCycles(ctx context.Context, userID string) ([]domain.Cycle, error)
	CreateCycle(ctx context.Context, c domain.Cycle) error
	CreateSymptom(ctx context.Context, s domain.Symptom) error
	ListAllSymptoms(ctx context.Context) ([]domain.Symptom, error)
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImportService loads generated or migrated user histories.
type ImportService struct {
	store  ImportStore
	hasher auth.Hasher
	graph  SymptomRecorder
	nowFn  func() time.Time
}

// NewImportService constructs an ImportService. recorder may be nil.
func NewImportService(store ImportStore, hasher auth.Hasher, recorder SymptomRecorder) *ImportService {
	return &ImportService{store: store, hasher: hasher, graph: recorder, nowFn: time.Now}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *ImportService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// ErrAlreadyImported reports a user whose email is already registered.
var ErrAlreadyImported = errors.New("user already imported")

// ImportUser stores the account, cycles and symptoms of in in one transaction,
// so a failed import leaves nothing behind and can be retried. Users whose
// email already exists are skipped with ErrAlreadyImported.
func (s *ImportService) ImportUser(ctx context.Context, in UserImport) error {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return fmt.Errorf("import user %q: email and password are required", in.ID)
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return err
	}

	now := s.nowFn().UTC()
	created := now
	if in.CreatedAt != nil {
		created = in.CreatedAt.UTC()
	}
	user := domain.User{
		ID:              idOrNew(in.ID),
		Email:           email,
		PasswordHash:    hash,
		FirstName:       truncate(sanitizeString(in.FirstName), maxNameLength),
		LastName:        truncate(sanitizeString(in.LastName), maxNameLength),
		DateOfBirth:     dateOnlyPtr(in.DateOfBirth),
		AvgCycleLength:  defaultIfNonPositive(in.AvgCycleLength, cycle.DefaultCycleLength),
		AvgPeriodLength: defaultIfNonPositive(in.AvgPeriodLength, cycle.DefaultPeriodLength),
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	return s.store.WithTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateUser(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: %s", ErrAlreadyImported, email)
			}
			return fmt.Errorf("import user %s: %w", user.ID, err)
		}

		for _, ci := range in.Cycles {
			c := domain.Cycle{
				ID:           idOrNew(ci.ID),
				UserID:       user.ID,
				StartDate:    cycle.DateOnly(ci.StartDate),
				EndDate:      dateOnlyPtr(ci.EndDate),
				CycleLength:  ci.CycleLength,
				PeriodLength: ci.PeriodLength,
				Notes:        ci.Notes,
				CreatedAt:    created,
			}
			if err := validateCycle(c); err != nil {
				return fmt.Errorf("import cycle %s: %w", c.ID, err)
			}
			if err := s.store.CreateCycle(ctx, c); err != nil {
				return err
			}
		}

		for _, si := range in.Symptoms {
			sym := domain.Symptom{
				ID:          idOrNew(si.ID),
				UserID:      user.ID,
				Date:        cycle.DateOnly(si.Date),
				SymptomType: symptomKey(si.SymptomType),
				Severity:    defaultIfNonPositive(si.Severity, defaultSeverity),
				Notes:       si.Notes,
				CreatedAt:   created,
			}
			if err := s.store.CreateSymptom(ctx, sym); err != nil {
				return err
			}
		}
		return nil
	})
}

// AllSymptoms returns every stored symptom grouped by user id.
func (s *ImportService) AllSymptoms(ctx context.Context) (map[string][]domain.Symptom, error) {
	all, err := s.store.ListAllSymptoms(ctx)
	if err != nil {
		return nil, err
	}
	byUser := make(map[string][]domain.Symptom)
	for _, sym := range all {
		byUser[sym.UserID] = append(byUser[sym.UserID], sym)
	}
	return byUser, nil
}

// ProjectUser writes a user's symptoms to the symptom graph. Replays are
// idempotent because graph edges are keyed by symptom id.
func (s *ImportService) ProjectUser(ctx context.Context, userID string, symptoms []domain.Symptom) error {
	if s.graph == nil {
		return errors.New("no symptom graph configured")
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user %s: %w", userID, err)
	}
	cycles, err := s.store.ListCycles(ctx, userID)
	if err != nil {
		return fmt.Errorf("list cycles for %s: %w", userID, err)
	}
	profile := cycleProfile(user)
	records := cycleRecords(cycles)

	var taskErr TaskError
	for _, sym := range symptoms {
		if err := ctx.Err(); err != nil {
			return err
		}
		taskErr.append(s.graph.RecordSymptom(ctx, tagSymptom(sym, profile, records)))
	}
	return taskErr.asError()
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func defaultIfNonPositive(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
