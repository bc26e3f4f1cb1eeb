package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/arivai/internal/domain"
	"github.com/vanshika/arivai/internal/repository"
	"github.com/vanshika/arivai/internal/repository/repotest"
)

func TestOnboardingService_Save(t *testing.T) {
	repo := repotest.New(t)
	seedUser(t, repo, "u1")
	svc := NewOnboardingService(repo)
	svc.WithClock(fixedClock)
	ctx := context.Background()

	_, found, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	saved, err := svc.Save(ctx, "u1", OnboardingInput{
		LastPeriodDate:     ptr(day("2024-03-01")),
		TypicalCycleLength: "31-35",
		PeriodDuration:     "8+",
		CycleVariability:   "rarely",
		HealthConditions:   []string{"pcos"},
		DynamicPredictions: "no",
	})
	require.NoError(t, err)
	assert.True(t, saved.IsIrregular)
	assert.Equal(t, domain.ProfileModeIrregular, saved.ProfileMode)
	assert.False(t, saved.ShowBufferDays)
	assert.True(t, saved.IsCompleted)

	user, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 33, user.AvgCycleLength)
	assert.Equal(t, 8, user.AvgPeriodLength)

	cycles, err := repo.ListCycles(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.Equal(t, day("2024-03-01"), cycles[0].StartDate)
	assert.Equal(t, 33, *cycles[0].CycleLength)

	again, err := svc.Save(ctx, "u1", OnboardingInput{
		LastPeriodDate:     ptr(day("2024-03-01")),
		TypicalCycleLength: "unexpected",
		HealthConditions:   []string{"menopause", "pregnant_ttc"},
	})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, domain.ProfileModeTTC, again.ProfileMode)
	assert.True(t, again.ShowBufferDays)

	cycles, err = repo.ListCycles(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, cycles, 1, "same start date does not create a second cycle")

	user, err = repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 28, user.AvgCycleLength)
	assert.Equal(t, 5, user.AvgPeriodLength)

	stored, found, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"menopause", "pregnant_ttc"}, stored.HealthConditions)
}

// rejectingUserUpdates fails every profile update after the onboarding row is written.
type rejectingUserUpdates struct {
	*repository.Repository
	err error
}

func (r rejectingUserUpdates) UpdateUser(context.Context, domain.User) error { return r.err }

func TestOnboardingService_SaveIsAtomic(t *testing.T) {
	repo := repotest.New(t)
	seedUser(t, repo, "u1")
	boom := errors.New("disk full")
	svc := NewOnboardingService(rejectingUserUpdates{Repository: repo, err: boom})
	svc.WithClock(fixedClock)
	ctx := context.Background()

	_, err := svc.Save(ctx, "u1", OnboardingInput{
		LastPeriodDate:     ptr(day("2024-03-01")),
		TypicalCycleLength: "31-35",
		PeriodDuration:     "8+",
	})
	require.ErrorIs(t, err, boom)

	_, found, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found, "onboarding must not be marked completed when the profile update fails")

	user, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 28, user.AvgCycleLength)
	assert.Equal(t, 5, user.AvgPeriodLength)

	cycles, err := repo.ListCycles(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cycles)
}

func TestProfileModePrecedence(t *testing.T) {
	cases := []struct {
		name string
		in   domain.Onboarding
		want string
	}{
		{"regular", domain.Onboarding{TypicalCycleLength: "26-30"}, domain.ProfileModeRegular},
		{"long cycles", domain.Onboarding{TypicalCycleLength: ">40"}, domain.ProfileModeIrregular},
		{"variable", domain.Onboarding{CycleVariability: "always_irregular"}, domain.ProfileModeIrregular},
		{"menopause beats irregular", domain.Onboarding{CycleVariability: "often", HealthConditions: []string{"menopause"}}, domain.ProfileModeMenopause},
		{"ttc beats menopause", domain.Onboarding{HealthConditions: []string{"menopause", "pregnant_ttc"}}, domain.ProfileModeTTC},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.IsIrregular = isIrregular(tc.in)
			assert.Equal(t, tc.want, profileMode(tc.in))
		})
	}
}
