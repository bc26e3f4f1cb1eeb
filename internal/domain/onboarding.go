package domain

import "time"

// Profile modes assigned at onboarding.
const (
	ProfileModeRegular   = "regular"
	ProfileModeIrregular = "irregular"
	ProfileModeTTC       = "ttc"
	ProfileModeMenopause = "menopause"
)

// Onboarding stores the questionnaire answers and the profile settings derived
// from them.
type Onboarding struct {
	ID                 string
	UserID             string
	LastPeriodDate     *time.Time
	TypicalCycleLength string
	PeriodDuration     string
	CycleVariability   string
	HealthConditions   []string
	FertilityTracking  []string
	TrackSymptoms      string
	DynamicPredictions string
	StressLevel        string
	SleepPattern       string
	HealthNotes        string
	ProfileMode        string
	IsIrregular        bool
	ShowBufferDays     bool
	IsCompleted        bool
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
