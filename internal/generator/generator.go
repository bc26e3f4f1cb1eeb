package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
	"github.com/vanshika/arivai/internal/service"
)

// Dataset contains the generated accounts with their cycle history.
type Dataset struct {
	Users []service.UserImport `json:"users"`
}

// Generator produces synthetic tracking histories that look like real usage:
// cycles drift around a per-user average and symptoms cluster in the phases
// where they are typically reported.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = def.NumUsers
	}
	if cfg.CyclesPerUser <= 0 {
		cfg.CyclesPerUser = def.CyclesPerUser
	}
	if cfg.SymptomsPerCycle < 0 {
		cfg.SymptomsPerCycle = 0
	}
	if cfg.CycleVariability < 0 {
		cfg.CycleVariability = 0
	}
	if cfg.Password == "" {
		cfg.Password = def.Password
	}
	if cfg.Until.IsZero() {
		cfg.Until = time.Now()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises users with cycles and symptoms. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	users := make([]service.UserImport, g.cfg.NumUsers)
	until := cycle.DateOnly(g.cfg.Until)

	for i := 0; i < g.cfg.NumUsers; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		userID := fmt.Sprintf("USR-%06d", i+1)
		first, last := g.randomName()
		avgCycle := 24 + g.rand.Intn(11)
		avgPeriod := 3 + g.rand.Intn(5)
		dob := time.Date(1975+g.rand.Intn(30), time.Month(1+g.rand.Intn(12)), 1+g.rand.Intn(28), 0, 0, 0, 0, time.UTC)

		cycles := g.cycles(userID, until, avgCycle, avgPeriod)
		createdAt := cycles[0].StartDate.Add(-time.Duration(g.rand.Intn(72)) * time.Hour)

		users[i] = service.UserImport{
			ID:              userID,
			Email:           g.randomEmail(first, last, i+1),
			Password:        g.cfg.Password,
			FirstName:       first,
			LastName:        last,
			DateOfBirth:     &dob,
			AvgCycleLength:  avgCycle,
			AvgPeriodLength: avgPeriod,
			Cycles:          cycles,
			Symptoms:        g.symptoms(userID, cycles, avgCycle, until),
			CreatedAt:       &createdAt,
		}
	}

	return Dataset{Users: users}, nil
}

// cycles walks backwards from until so the newest cycle is still open.
func (g *Generator) cycles(userID string, until time.Time, avgCycle, avgPeriod int) []service.CycleImport {
	n := g.cfg.CyclesPerUser
	lengths := make([]int, n)
	total := 0
	for i := range lengths {
		lengths[i] = g.drift(avgCycle)
		total += lengths[i]
	}

	// The open cycle started somewhere inside its expected length.
	start := cycle.AddDays(until, -(total - lengths[n-1] + g.rand.Intn(lengths[n-1])))
	out := make([]service.CycleImport, 0, n)
	for i := 0; i < n; i++ {
		period := avgPeriod
		if g.rand.Intn(3) == 0 {
			period = max(2, avgPeriod+g.rand.Intn(3)-1)
		}
		c := service.CycleImport{
			ID:           fmt.Sprintf("CYC-%s-%02d", strings.TrimPrefix(userID, "USR-"), i+1),
			StartDate:    start,
			PeriodLength: intPtr(period),
		}
		if i < n-1 {
			end := cycle.AddDays(start, lengths[i]-1)
			c.EndDate = &end
			c.CycleLength = intPtr(lengths[i])
		}
		out = append(out, c)
		start = cycle.AddDays(start, lengths[i])
	}
	return out
}

func (g *Generator) symptoms(userID string, cycles []service.CycleImport, avgCycle int, until time.Time) []service.SymptomImport {
	out := make([]service.SymptomImport, 0, len(cycles)*g.cfg.SymptomsPerCycle)
	for ci, c := range cycles {
		length := avgCycle
		if c.CycleLength != nil {
			length = *c.CycleLength
		}
		for j := 0; j < g.cfg.SymptomsPerCycle; j++ {
			day := 1 + g.rand.Intn(length)
			date := cycle.AddDays(c.StartDate, day-1)
			if date.After(until) {
				continue
			}
			phase := cycle.PhaseFor(day, length)
			out = append(out, service.SymptomImport{
				ID:          fmt.Sprintf("SYM-%s-%02d-%02d", strings.TrimPrefix(userID, "USR-"), ci+1, j+1),
				Date:        date,
				SymptomType: g.symptomFor(phase),
				Severity:    1 + g.rand.Intn(5),
				Notes:       g.randomNote(),
			})
		}
	}
	return out
}

// drift returns avg moved by at most CycleVariability days.
func (g *Generator) drift(avg int) int {
	if g.cfg.CycleVariability == 0 {
		return avg
	}
	return max(21, avg+g.rand.Intn(2*g.cfg.CycleVariability+1)-g.cfg.CycleVariability)
}

// symptomFor prefers the symptoms commonly reported in phase and falls back
// to the full catalogue a third of the time.
func (g *Generator) symptomFor(phase cycle.Phase) string {
	typical := phaseSymptoms[phase]
	if len(typical) == 0 || g.rand.Intn(3) == 0 {
		return domain.SymptomTypes[g.rand.Intn(len(domain.SymptomTypes))]
	}
	return typical[g.rand.Intn(len(typical))]
}

var phaseSymptoms = map[cycle.Phase][]string{
	cycle.PhaseMenstrual:  {"cramps", "fatigue", "back_pain", "headache"},
	cycle.PhaseFollicular: {"acne", "insomnia"},
	cycle.PhaseOvulation:  {"bloating", "breast_tenderness", "nausea"},
	cycle.PhaseLuteal:     {"mood_swing", "cravings", "irritability", "anxiety", "bloating"},
}

func (g *Generator) randomName() (string, string) {
	return g.nameFragments.first[g.rand.Intn(len(g.nameFragments.first))],
		g.nameFragments.last[g.rand.Intn(len(g.nameFragments.last))]
}

func (g *Generator) randomEmail(first, last string, seq int) string {
	host := g.nameFragments.domains[g.rand.Intn(len(g.nameFragments.domains))]
	return fmt.Sprintf("%s.%s.%d@%s", strings.ToLower(first), strings.ToLower(last), seq, host)
}

func (g *Generator) randomNote() string {
	if g.rand.Intn(2) == 0 {
		return ""
	}
	return g.nameFragments.notes[g.rand.Intn(len(g.nameFragments.notes))]
}

func intPtr(v int) *int { return &v }

type nameFragments struct {
	first   []string
	last    []string
	domains []string
	notes   []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:   []string{"Jane", "Priya", "Liu", "Maria", "Sofia", "Emma", "Mia", "Ava", "Zara", "Aisha", "Ananya", "Chloe", "Fatima", "Hana", "Isla"},
		last:    []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee"},
		domains: []string{"example.com", "mail.com", "arivai.app", "wellness.net"},
		notes:   []string{"after lunch", "woke up with it", "better after a walk", "worse in the evening", "took a painkiller", "skipped coffee"},
	}
}
