package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
)

// ExportStore reads everything a user export contains.
type ExportStore interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
	ListCycles(ctx context.Context, userID string) ([]domain.Cycle, error)
	ListSymptoms(ctx context.Context, userID string, day *time.Time) ([]domain.Symptom, error)
}

// UserExport is a user's profile with their cycle and symptom logs.
type UserExport struct {
	User        domain.User
	Cycles      []domain.Cycle
	Symptoms    []domain.Symptom
	GeneratedAt time.Time
}

// ExportService produces personal data exports.
type ExportService struct {
	store ExportStore
	nowFn func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(store ExportStore) *ExportService {
	return &ExportService{store: store, nowFn: time.Now}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *ExportService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// Export gathers the user's data.
func (s *ExportService) Export(ctx context.Context, userID string) (UserExport, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return UserExport{}, storeErr(err, "User not found")
	}
	cycles, err := s.store.ListCycles(ctx, userID)
	if err != nil {
		return UserExport{}, fmt.Errorf("export cycles for %s: %w", userID, err)
	}
	symptoms, err := s.store.ListSymptoms(ctx, userID, nil)
	if err != nil {
		return UserExport{}, fmt.Errorf("export symptoms for %s: %w", userID, err)
	}
	return UserExport{
		User:        user,
		Cycles:      cycles,
		Symptoms:    symptoms,
		GeneratedAt: s.nowFn().UTC(),
	}, nil
}

var exportHeader = []string{"record", "id", "date", "end_date", "type", "cycle_length", "period_length", "severity", "notes"}

// WriteCSV writes cycles and symptoms as one flat table: a row per cycle
// followed by a row per symptom.
func WriteCSV(w io.Writer, exp UserExport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, c := range exp.Cycles {
		row := []string{
			"cycle",
			c.ID,
			cycle.FormatDate(c.StartDate),
			formatDatePtr(c.EndDate),
			"",
			formatIntPtr(c.CycleLength),
			formatIntPtr(c.PeriodLength),
			"",
			c.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	for _, sym := range exp.Symptoms {
		row := []string{
			"symptom",
			sym.ID,
			cycle.FormatDate(sym.Date),
			"",
			sym.SymptomType,
			"",
			"",
			strconv.Itoa(sym.Severity),
			sym.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return cycle.FormatDate(*t)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
