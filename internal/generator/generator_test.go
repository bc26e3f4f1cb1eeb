package generator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vanshika/arivai/internal/cycle"
)

var until = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		NumUsers:         20,
		CyclesPerUser:    4,
		SymptomsPerCycle: 3,
		CycleVariability: 2,
		Until:            until,
		Seed:             7,
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := New(testConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, err := New(testConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different datasets (-first +second):\n%s", diff)
	}
}

func TestGenerateProducesConsistentHistories(t *testing.T) {
	ds, err := New(testConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ds.Users) != 20 {
		t.Fatalf("expected 20 users, got %d", len(ds.Users))
	}

	emails := make(map[string]bool)
	for _, u := range ds.Users {
		if emails[u.Email] {
			t.Fatalf("duplicate email %s", u.Email)
		}
		emails[u.Email] = true
		if u.Password != DefaultConfig().Password {
			t.Fatalf("expected default password, got %q", u.Password)
		}
		if u.AvgCycleLength < 24 || u.AvgCycleLength > 34 {
			t.Fatalf("unexpected average cycle length %d", u.AvgCycleLength)
		}
		if len(u.Cycles) != 4 {
			t.Fatalf("expected 4 cycles for %s, got %d", u.ID, len(u.Cycles))
		}

		for i, c := range u.Cycles {
			last := i == len(u.Cycles)-1
			if last {
				if c.EndDate != nil || c.CycleLength != nil {
					t.Fatalf("expected newest cycle of %s to be open: %+v", u.ID, c)
				}
				if c.StartDate.After(until) {
					t.Fatalf("newest cycle of %s starts after %s", u.ID, until)
				}
				continue
			}
			next := u.Cycles[i+1].StartDate
			if got := cycle.DaysBetween(c.StartDate, next); got != *c.CycleLength {
				t.Fatalf("cycle %s length %d does not match gap %d", c.ID, *c.CycleLength, got)
			}
			if !cycle.AddDays(*c.EndDate, 1).Equal(next) {
				t.Fatalf("cycle %s should end the day before the next starts", c.ID)
			}
			if d := *c.CycleLength - u.AvgCycleLength; d < -2 || d > 2 {
				if *c.CycleLength != 21 {
					t.Fatalf("cycle %s drifted %d days", c.ID, d)
				}
			}
		}

		for _, s := range u.Symptoms {
			if s.Date.After(until) {
				t.Fatalf("symptom %s dated in the future", s.ID)
			}
			if s.Date.Before(u.Cycles[0].StartDate) {
				t.Fatalf("symptom %s predates history", s.ID)
			}
			if s.Severity < 1 || s.Severity > 5 {
				t.Fatalf("symptom %s severity %d out of range", s.ID, s.Severity)
			}
		}
	}
}

func TestGenerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(testConfig()).Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWriteAndReadDataset(t *testing.T) {
	ds, err := New(testConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	if err := WriteDataset(ds, dir); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	got, err := ReadDataset(filepath.Join(dir, UsersFile))
	if err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	if diff := cmp.Diff(ds, got); diff != "" {
		t.Fatalf("dataset changed on disk (-want +got):\n%s", diff)
	}
}
