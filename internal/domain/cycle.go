package domain

import "time"

// Cycle is a logged menstrual cycle. Dates are calendar dates at UTC midnight.
type Cycle struct {
	ID           string
	UserID       string
	StartDate    time.Time
	EndDate      *time.Time
	CycleLength  *int
	PeriodLength *int
	Notes        string
	CreatedAt    time.Time
}

// Symptom is a single symptom observation on a calendar date.
type Symptom struct {
	ID          string
	UserID      string
	CycleID     string
	Date        time.Time
	SymptomType string
	Severity    int
	Notes       string
	CreatedAt   time.Time
}

// SymptomTypes lists the symptom identifiers offered by the client apps.
var SymptomTypes = []string{
	"cramps",
	"bloating",
	"headache",
	"fatigue",
	"mood_swing",
	"breast_tenderness",
	"acne",
	"cravings",
	"nausea",
	"back_pain",
	"insomnia",
	"anxiety",
	"irritability",
	"depression",
}

// PhaseSymptomCount aggregates how often a symptom is logged during a phase.
type PhaseSymptomCount struct {
	Phase       string
	SymptomType string
	Occurrences int64
	AvgSeverity float64
}

// SymptomPair counts days on which two symptoms were logged together.
type SymptomPair struct {
	First    string
	Second   string
	Together int64
}

// SymptomPatterns is the graph-derived summary of a user's symptom history.
type SymptomPatterns struct {
	UserID       string
	ByPhase      []PhaseSymptomCount
	CoOccurrence []SymptomPair
}
