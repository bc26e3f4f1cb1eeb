package cycle

import "time"

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC of its calendar date in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours()) / 24
}

// AddDays shifts a calendar date by n days.
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// ParseDate parses a YYYY-MM-DD date, also accepting full RFC 3339 timestamps.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return DateOnly(t).Format(DateLayout)
}

// AgeOn returns whole years of age on today, computed as elapsed days div 365.
// A nil date of birth yields 0, and a birth date after today is clamped to 0.
func AgeOn(dob *time.Time, today time.Time) int {
	if dob == nil {
		return 0
	}
	days := DaysBetween(*dob, today)
	if days < 0 {
		return 0
	}
	return days / 365
}
