package cycle

import "time"

// Phase names a segment of the menstrual cycle.
type Phase string

const (
	PhaseMenstrual  Phase = "Menstrual"
	PhaseFollicular Phase = "Follicular"
	PhaseOvulation  Phase = "Ovulation"
	PhaseLuteal     Phase = "Luteal"
)

// Phases lists every phase in cycle order.
var Phases = []Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal}

const (
	menstrualLastDay  = 5
	follicularLastDay = 12
	lutealLength      = 14
	pmsLeadDays       = 7
)

// ParsePhase returns the phase matching name and whether it is known.
func ParsePhase(name string) (Phase, bool) {
	for _, p := range Phases {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// CycleDay is the 1-based day of the cycle on today. Dates before lastStart
// produce zero or negative values.
func CycleDay(lastStart, today time.Time) int {
	return DaysBetween(lastStart, today) + 1
}

// PhaseFor classifies a cycle day. The menstrual and follicular bounds are
// checked before the ovulation window, so for short cycles an overlapping
// ovulation window is shadowed.
func PhaseFor(cycleDay, cycleLength int) Phase {
	if cycleDay <= menstrualLastDay {
		return PhaseMenstrual
	}
	if cycleDay <= follicularLastDay {
		return PhaseFollicular
	}
	ov := OvulationDay(cycleLength)
	if cycleDay >= ov-1 && cycleDay <= ov+1 {
		return PhaseOvulation
	}
	return PhaseLuteal
}

// OvulationDay estimates ovulation as fourteen days before the next period.
func OvulationDay(cycleLength int) int {
	return cycleLength - lutealLength
}

// PMSWindow is the inclusive range of cycle days where PMS is expected.
type PMSWindow struct {
	StartDay int
	EndDay   int
}

// PMSWindowFor returns the week leading up to the next period.
func PMSWindowFor(cycleLength int) PMSWindow {
	return PMSWindow{
		StartDay: cycleLength - pmsLeadDays,
		EndDay:   cycleLength - 1,
	}
}

// NextPeriod predicts the start of the next period.
func NextPeriod(lastStart time.Time, cycleLength int) time.Time {
	return AddDays(lastStart, cycleLength)
}

// FertileWindow returns the estimated fertile window around ovulation for the
// cycle beginning at lastStart: five days before ovulation through one day after.
func FertileWindow(lastStart time.Time, cycleLength int) (start, ovulation, end time.Time) {
	ovulation = AddDays(lastStart, OvulationDay(cycleLength)-1)
	return AddDays(ovulation, -5), ovulation, AddDays(ovulation, 1)
}
