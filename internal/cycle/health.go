package cycle

import "time"

const (
	gestationDays          = 280
	firstTrimesterWeeks    = 14
	secondTrimesterWeeks   = 28
	perimenopauseMinAge    = 40
	perimenopauseVariation = 7
)

// Pregnancy describes gestational progress. Only IsPregnant is meaningful
// when it is false.
type Pregnancy struct {
	IsPregnant bool
	Weeks      int
	Days       int
	DueDate    time.Time
	Trimester  int
}

// PregnancyTimeline computes gestational age from the last menstrual period.
// lmp must not be after today.
func PregnancyTimeline(lmp, today time.Time) Pregnancy {
	elapsed := DaysBetween(lmp, today)
	weeks := elapsed / 7

	trimester := 3
	switch {
	case weeks < firstTrimesterWeeks:
		trimester = 1
	case weeks < secondTrimesterWeeks:
		trimester = 2
	}

	return Pregnancy{
		IsPregnant: true,
		Weeks:      weeks,
		Days:       elapsed % 7,
		DueDate:    AddDays(lmp, gestationDays),
		Trimester:  trimester,
	}
}

// MenopauseStatus reports perimenopause indicators.
type MenopauseStatus struct {
	PerimenopauseLikely bool
	Menopause           bool
}

// MenopauseCheck flags likely perimenopause when a user aged 40 or over has
// recent cycle lengths spreading at least a week. Menopause itself is never
// asserted.
func MenopauseCheck(age int, cycleLengths []int) MenopauseStatus {
	var status MenopauseStatus
	if age < perimenopauseMinAge || len(cycleLengths) < 2 {
		return status
	}
	lo, hi := cycleLengths[0], cycleLengths[0]
	for _, l := range cycleLengths[1:] {
		lo = min(lo, l)
		hi = max(hi, l)
	}
	status.PerimenopauseLikely = hi-lo >= perimenopauseVariation
	return status
}
