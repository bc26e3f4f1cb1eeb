package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vanshika/arivai/internal/domain"
)

// ListCycles returns a user's cycles, most recent start first.
func (r *Repository) ListCycles(ctx context.Context, userID string) ([]domain.Cycle, error) {
	return r.queryCycles(ctx, selectCyclesSQL+` ORDER BY start_date DESC, created_at DESC`, userID)
}

// RecentCycles returns at most limit cycles, most recent start first.
func (r *Repository) RecentCycles(ctx context.Context, userID string, limit int) ([]domain.Cycle, error) {
	return r.queryCycles(ctx, selectCyclesSQL+` ORDER BY start_date DESC, created_at DESC LIMIT $2`, userID, limit)
}

// GetCycle loads a cycle owned by userID.
func (r *Repository) GetCycle(ctx context.Context, userID, id string) (domain.Cycle, error) {
	c, err := scanCycle(r.conn(ctx).QueryRowContext(ctx, selectCyclesSQL+` AND id = $2`, userID, id))
	if err != nil {
		return domain.Cycle{}, notFound(err)
	}
	return c, nil
}

// CreateCycle inserts a cycle.
func (r *Repository) CreateCycle(ctx context.Context, c domain.Cycle) error {
	if c.ID == "" || c.UserID == "" {
		return errors.New("cycle id and user id are required")
	}
	_, err := r.conn(ctx).ExecContext(ctx, insertCycleSQL,
		c.ID,
		c.UserID,
		dateOnly(c.StartDate),
		dateParam(c.EndDate),
		intParam(c.CycleLength),
		intParam(c.PeriodLength),
		c.Notes,
		c.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert cycle %s: %w", c.ID, err)
	}
	return nil
}

// UpdateCycle overwrites a cycle owned by c.UserID.
func (r *Repository) UpdateCycle(ctx context.Context, c domain.Cycle) error {
	res, err := r.conn(ctx).ExecContext(ctx, updateCycleSQL,
		c.ID,
		c.UserID,
		dateOnly(c.StartDate),
		dateParam(c.EndDate),
		intParam(c.CycleLength),
		intParam(c.PeriodLength),
		c.Notes,
	)
	if err != nil {
		return fmt.Errorf("update cycle %s: %w", c.ID, err)
	}
	return expectAffected(res)
}

func (r *Repository) queryCycles(ctx context.Context, query string, args ...any) ([]domain.Cycle, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	defer rows.Close()

	cycles := []domain.Cycle{}
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

func scanCycle(row rowScanner) (domain.Cycle, error) {
	var (
		c            domain.Cycle
		start, end   nullTime
		createdAt    nullTime
		cycleLength  sql.NullInt64
		periodLength sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.UserID, &start, &end, &cycleLength, &periodLength, &c.Notes, &createdAt); err != nil {
		return domain.Cycle{}, err
	}
	c.StartDate = dateOnly(start.Time)
	c.EndDate = end.dateOnlyPtr()
	c.CycleLength = intPtr(cycleLength)
	c.PeriodLength = intPtr(periodLength)
	c.CreatedAt = createdAt.Time
	return c, nil
}

// ListSymptoms returns a user's symptoms, newest date first, optionally for a
// single day.
func (r *Repository) ListSymptoms(ctx context.Context, userID string, day *time.Time) ([]domain.Symptom, error) {
	if day != nil {
		return r.querySymptoms(ctx, selectSymptomsSQL+` AND date = $2 ORDER BY created_at DESC`, userID, dateOnly(*day))
	}
	return r.querySymptoms(ctx, selectSymptomsSQL+` ORDER BY date DESC, created_at DESC`, userID)
}

// SymptomsSince returns symptoms dated on or after from, newest first.
func (r *Repository) SymptomsSince(ctx context.Context, userID string, from time.Time) ([]domain.Symptom, error) {
	return r.querySymptoms(ctx, selectSymptomsSQL+` AND date >= $2 ORDER BY date DESC, created_at DESC`, userID, dateOnly(from))
}

// ListAllSymptoms returns every stored symptom ordered by user and date.
func (r *Repository) ListAllSymptoms(ctx context.Context) ([]domain.Symptom, error) {
	return r.querySymptoms(ctx, selectAllSymptomsSQL)
}

// CreateSymptom inserts a symptom observation.
func (r *Repository) CreateSymptom(ctx context.Context, s domain.Symptom) error {
	if s.ID == "" || s.UserID == "" {
		return errors.New("symptom id and user id are required")
	}
	_, err := r.conn(ctx).ExecContext(ctx, insertSymptomSQL,
		s.ID,
		s.UserID,
		s.CycleID,
		dateOnly(s.Date),
		s.SymptomType,
		s.Severity,
		s.Notes,
		s.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert symptom %s: %w", s.ID, err)
	}
	return nil
}

func (r *Repository) querySymptoms(ctx context.Context, query string, args ...any) ([]domain.Symptom, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query symptoms: %w", err)
	}
	defer rows.Close()

	symptoms := []domain.Symptom{}
	for rows.Next() {
		var (
			s         domain.Symptom
			day       nullTime
			createdAt nullTime
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.CycleID, &day, &s.SymptomType, &s.Severity, &s.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan symptom: %w", err)
		}
		s.Date = dateOnly(day.Time)
		s.CreatedAt = createdAt.Time
		symptoms = append(symptoms, s)
	}
	return symptoms, rows.Err()
}

const selectCyclesSQL = `
SELECT id, user_id, start_date, end_date, cycle_length, period_length, notes, created_at
FROM cycles
WHERE user_id = $1`

const insertCycleSQL = `
INSERT INTO cycles (id, user_id, start_date, end_date, cycle_length, period_length, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const updateCycleSQL = `
UPDATE cycles SET
	start_date = $3,
	end_date = $4,
	cycle_length = $5,
	period_length = $6,
	notes = $7
WHERE id = $1 AND user_id = $2`

const selectSymptomsSQL = `
SELECT id, user_id, cycle_id, date, symptom_type, severity, notes, created_at
FROM symptoms
WHERE user_id = $1`

const selectAllSymptomsSQL = `
SELECT id, user_id, cycle_id, date, symptom_type, severity, notes, created_at
FROM symptoms
ORDER BY user_id, date, created_at`

const insertSymptomSQL = `
INSERT INTO symptoms (id, user_id, cycle_id, date, symptom_type, severity, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
