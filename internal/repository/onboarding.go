package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vanshika/arivai/internal/domain"
)

// GetOnboarding loads the questionnaire for userID.
func (r *Repository) GetOnboarding(ctx context.Context, userID string) (domain.Onboarding, error) {
	var (
		o                   domain.Onboarding
		lastPeriod          nullTime
		completedAt         nullTime
		createdAt           nullTime
		updatedAt           nullTime
		conditions, fertile string
	)
	err := r.conn(ctx).QueryRowContext(ctx, selectOnboardingSQL, userID).Scan(
		&o.ID,
		&o.UserID,
		&lastPeriod,
		&o.TypicalCycleLength,
		&o.PeriodDuration,
		&o.CycleVariability,
		&conditions,
		&fertile,
		&o.TrackSymptoms,
		&o.DynamicPredictions,
		&o.StressLevel,
		&o.SleepPattern,
		&o.HealthNotes,
		&o.ProfileMode,
		&o.IsIrregular,
		&o.ShowBufferDays,
		&o.IsCompleted,
		&completedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Onboarding{}, notFound(err)
	}

	if o.HealthConditions, err = decodeStrings(conditions); err != nil {
		return domain.Onboarding{}, fmt.Errorf("decode health conditions: %w", err)
	}
	if o.FertilityTracking, err = decodeStrings(fertile); err != nil {
		return domain.Onboarding{}, fmt.Errorf("decode fertility tracking: %w", err)
	}
	o.LastPeriodDate = lastPeriod.dateOnlyPtr()
	o.CompletedAt = completedAt.ptr()
	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time
	return o, nil
}

// UpsertOnboarding stores the questionnaire, replacing any earlier answers
// while keeping the original id and creation time.
func (r *Repository) UpsertOnboarding(ctx context.Context, o domain.Onboarding) error {
	if o.ID == "" || o.UserID == "" {
		return errors.New("onboarding id and user id are required")
	}
	conditions, err := encodeStrings(o.HealthConditions)
	if err != nil {
		return fmt.Errorf("encode health conditions: %w", err)
	}
	fertile, err := encodeStrings(o.FertilityTracking)
	if err != nil {
		return fmt.Errorf("encode fertility tracking: %w", err)
	}

	createdAt := o.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.conn(ctx).ExecContext(ctx, upsertOnboardingSQL,
		o.ID,
		o.UserID,
		dateParam(o.LastPeriodDate),
		o.TypicalCycleLength,
		o.PeriodDuration,
		o.CycleVariability,
		conditions,
		fertile,
		o.TrackSymptoms,
		o.DynamicPredictions,
		o.StressLevel,
		o.SleepPattern,
		o.HealthNotes,
		o.ProfileMode,
		o.IsIrregular,
		o.ShowBufferDays,
		o.IsCompleted,
		timeParam(o.CompletedAt),
		createdAt.UTC(),
		o.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert onboarding for %s: %w", o.UserID, err)
	}
	return nil
}

const selectOnboardingSQL = `
SELECT id, user_id, last_period_date, typical_cycle_length, period_duration, cycle_variability,
       health_conditions, fertility_tracking, track_symptoms, dynamic_predictions, stress_level,
       sleep_pattern, health_notes, profile_mode, is_irregular, show_buffer_days, is_completed,
       completed_at, created_at, updated_at
FROM user_onboarding
WHERE user_id = $1`

const upsertOnboardingSQL = `
INSERT INTO user_onboarding (
	id, user_id, last_period_date, typical_cycle_length, period_duration, cycle_variability,
	health_conditions, fertility_tracking, track_symptoms, dynamic_predictions, stress_level,
	sleep_pattern, health_notes, profile_mode, is_irregular, show_buffer_days, is_completed,
	completed_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
ON CONFLICT (user_id) DO UPDATE SET
	last_period_date = excluded.last_period_date,
	typical_cycle_length = excluded.typical_cycle_length,
	period_duration = excluded.period_duration,
	cycle_variability = excluded.cycle_variability,
	health_conditions = excluded.health_conditions,
	fertility_tracking = excluded.fertility_tracking,
	track_symptoms = excluded.track_symptoms,
	dynamic_predictions = excluded.dynamic_predictions,
	stress_level = excluded.stress_level,
	sleep_pattern = excluded.sleep_pattern,
	health_notes = excluded.health_notes,
	profile_mode = excluded.profile_mode,
	is_irregular = excluded.is_irregular,
	show_buffer_days = excluded.show_buffer_days,
	is_completed = excluded.is_completed,
	completed_at = excluded.completed_at,
	updated_at = excluded.updated_at`
