// Package cycle derives cycle insights from a profile and its logged cycles.
// Every function is pure: the current date is always passed in.
package cycle

import "time"

// Default profile averages for users who have not set their own.
const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
	recentCycleWindow   = 6
)

// Profile is the subset of a user's profile the engine reads.
type Profile struct {
	DateOfBirth     *time.Time
	AvgCycleLength  int
	AvgPeriodLength int
}

// Record is a logged cycle.
type Record struct {
	StartDate    time.Time
	EndDate      *time.Time
	CycleLength  *int
	PeriodLength *int
}

// Insights is the per-user snapshot derived for a given day.
type Insights struct {
	CycleDay       int
	Phase          Phase
	PMSWindow      PMSWindow
	NextPeriodDate *time.Time
	OvulationDay   int
	Pregnancy      Pregnancy
	Menopause      MenopauseStatus
	DailyAdvice    Advice
}

// ComputeInsights builds the snapshot for today. A nil profile reports ok=false.
// latest is the most recent cycle or nil when none is logged; recentCycleLengths
// usually comes from RecentCycleLengths.
func ComputeInsights(profile *Profile, latest *Record, recentCycleLengths []int, today time.Time) (Insights, bool) {
	if profile == nil {
		return Insights{}, false
	}
	cycleLength := profile.AvgCycleLength

	if latest == nil {
		return Insights{
			CycleDay:     1,
			Phase:        PhaseFollicular,
			PMSWindow:    PMSWindowFor(cycleLength),
			OvulationDay: OvulationDay(cycleLength),
			DailyAdvice:  AdviceFor(PhaseFollicular),
		}, true
	}

	day := CycleDay(latest.StartDate, today)
	phase := PhaseFor(day, cycleLength)
	next := NextPeriod(latest.StartDate, cycleLength)

	return Insights{
		CycleDay:       day,
		Phase:          phase,
		PMSWindow:      PMSWindowFor(cycleLength),
		NextPeriodDate: &next,
		OvulationDay:   OvulationDay(cycleLength),
		Menopause:      MenopauseCheck(AgeOn(profile.DateOfBirth, today), recentCycleLengths),
		DailyAdvice:    AdviceFor(phase),
	}, true
}

// RecentCycleLengths returns the recorded lengths of the six most recent
// records, skipping records without a length. records must be ordered by
// start date descending.
func RecentCycleLengths(records []Record) []int {
	if len(records) > recentCycleWindow {
		records = records[:recentCycleWindow]
	}
	lengths := make([]int, 0, len(records))
	for _, r := range records {
		if r.CycleLength != nil && *r.CycleLength > 0 {
			lengths = append(lengths, *r.CycleLength)
		}
	}
	return lengths
}

// PhaseOn classifies day against the most recent record starting on or
// before it. ok is false when no record qualifies.
func PhaseOn(profile Profile, records []Record, day time.Time) (phase Phase, cycleDay int, ok bool) {
	target := DateOnly(day)
	var anchor *Record
	for i := range records {
		start := DateOnly(records[i].StartDate)
		if start.After(target) {
			continue
		}
		if anchor == nil || start.After(DateOnly(anchor.StartDate)) {
			anchor = &records[i]
		}
	}
	if anchor == nil {
		return "", 0, false
	}
	cycleDay = CycleDay(anchor.StartDate, target)
	return PhaseFor(cycleDay, profile.AvgCycleLength), cycleDay, true
}
