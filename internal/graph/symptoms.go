package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vanshika/arivai/internal/domain"
)

const (
	defaultPairLimit = 10
	unknownPhase     = "Unknown"
)

// SymptomEvent is a symptom log tagged with where it fell in the cycle.
type SymptomEvent struct {
	SymptomID   string
	UserID      string
	SymptomType string
	Severity    int
	Date        time.Time
	Phase       string
	CycleDay    int
}

// SymptomGraph maintains (User)-[:LOGGED]->(Symptom)-[:OBSERVED_IN]->(Phase).
type SymptomGraph struct {
	client Client
}

// NewSymptomGraph wraps client.
func NewSymptomGraph(client Client) *SymptomGraph {
	return &SymptomGraph{client: client}
}

// RecordSymptom upserts the LOGGED edge for one symptom log. Replaying the
// same log is a no-op.
func (g *SymptomGraph) RecordSymptom(ctx context.Context, ev SymptomEvent) error {
	if ev.SymptomID == "" || ev.UserID == "" {
		return errors.New("symptom id and user id are required")
	}
	phase := ev.Phase
	if phase == "" {
		phase = unknownPhase
	}
	params := map[string]any{
		"logId":       ev.SymptomID,
		"userId":      ev.UserID,
		"symptomType": ev.SymptomType,
		"severity":    int64(ev.Severity),
		"date":        ev.Date.UTC().Format("2006-01-02"),
		"phase":       phase,
		"cycleDay":    int64(ev.CycleDay),
	}
	if _, err := g.client.ExecuteWrite(ctx, recordSymptomCypher, params); err != nil {
		return fmt.Errorf("record symptom %s: %w", ev.SymptomID, err)
	}
	return nil
}

// Patterns summarises a user's symptoms per phase plus the symptom pairs most
// often logged on the same day.
func (g *SymptomGraph) Patterns(ctx context.Context, userID string, pairLimit int) (domain.SymptomPatterns, error) {
	if pairLimit <= 0 {
		pairLimit = defaultPairLimit
	}
	patterns := domain.SymptomPatterns{
		UserID:       userID,
		ByPhase:      []domain.PhaseSymptomCount{},
		CoOccurrence: []domain.SymptomPair{},
	}

	res, err := g.client.ExecuteRead(ctx, phasePatternsCypher, map[string]any{"userId": userID})
	if err != nil {
		return domain.SymptomPatterns{}, fmt.Errorf("fetch phase patterns for %s: %w", userID, err)
	}
	for _, rec := range res.Records {
		patterns.ByPhase = append(patterns.ByPhase, domain.PhaseSymptomCount{
			Phase:       toString(rec["phase"]),
			SymptomType: toString(rec["symptomType"]),
			Occurrences: toInt64(rec["occurrences"]),
			AvgSeverity: toFloat64(rec["avgSeverity"]),
		})
	}

	res, err = g.client.ExecuteRead(ctx, coOccurrenceCypher, map[string]any{
		"userId": userID,
		"limit":  int64(pairLimit),
	})
	if err != nil {
		return domain.SymptomPatterns{}, fmt.Errorf("fetch co-occurring symptoms for %s: %w", userID, err)
	}
	for _, rec := range res.Records {
		patterns.CoOccurrence = append(patterns.CoOccurrence, domain.SymptomPair{
			First:    toString(rec["first"]),
			Second:   toString(rec["second"]),
			Together: toInt64(rec["together"]),
		})
	}
	return patterns, nil
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func toFloat64(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

const recordSymptomCypher = `
MERGE (u:User {userId: $userId})
MERGE (s:Symptom {symptomType: $symptomType})
MERGE (p:Phase {name: $phase})
MERGE (u)-[l:LOGGED {logId: $logId}]->(s)
SET l.date = $date,
    l.severity = $severity,
    l.phase = $phase,
    l.cycleDay = $cycleDay
MERGE (s)-[:OBSERVED_IN]->(p)
`

const phasePatternsCypher = `
MATCH (:User {userId: $userId})-[l:LOGGED]->(s:Symptom)
RETURN l.phase AS phase,
       s.symptomType AS symptomType,
       count(l) AS occurrences,
       avg(l.severity) AS avgSeverity
ORDER BY phase ASC, occurrences DESC, symptomType ASC
`

const coOccurrenceCypher = `
MATCH (u:User {userId: $userId})-[a:LOGGED]->(s1:Symptom),
      (u)-[b:LOGGED]->(s2:Symptom)
WHERE a.date = b.date AND s1.symptomType < s2.symptomType
RETURN s1.symptomType AS first,
       s2.symptomType AS second,
       count(DISTINCT a.date) AS together
ORDER BY together DESC, first ASC, second ASC
LIMIT $limit
`
