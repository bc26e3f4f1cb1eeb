package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vanshika/arivai/internal/auth"
	"github.com/vanshika/arivai/internal/domain"
	"github.com/vanshika/arivai/internal/repository"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T { return &v }

func testHasher() auth.Hasher { return auth.NewHasher(4) }

func seedUser(t *testing.T, repo *repository.Repository, id string) domain.User {
	t.Helper()
	hash, err := testHasher().Hash("secret-pass")
	require.NoError(t, err)
	user := domain.User{
		ID:              id,
		Email:           id + "@example.com",
		PasswordHash:    hash,
		FirstName:       "Asha",
		AvgCycleLength:  28,
		AvgPeriodLength: 5,
		CreatedAt:       fixedNow,
		UpdatedAt:       fixedNow,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func seedCycle(t *testing.T, repo *repository.Repository, userID, id, start string, length *int) {
	t.Helper()
	require.NoError(t, repo.CreateCycle(context.Background(), domain.Cycle{
		ID:          id,
		UserID:      userID,
		StartDate:   day(start),
		CycleLength: length,
		CreatedAt:   fixedNow,
	}))
}

func newInsights(repo *repository.Repository) *InsightsService {
	s := NewInsightsService(repo, time.UTC)
	s.WithClock(fixedClock)
	return s
}
