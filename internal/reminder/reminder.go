// Package reminder sends daily cycle reminders to Telegram-linked users.
package reminder

import (
	"fmt"
	"html"
	"time"

	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
)

// Kind identifies which cycle event a reminder announces.
type Kind string

const (
	KindFertileStart Kind = "fertile_start"
	KindOvulation    Kind = "ovulation"
	KindPeriodSoon   Kind = "period_soon"
)

const periodLeadDays = 2

// Reminder is a message due for one user today.
type Reminder struct {
	UserID string
	ChatID int64
	Kind   Kind
	Text   string
}

// Due returns the reminder t should receive on today, if any. When the logged
// start is more than one cycle old the cycle is projected forward by whole
// cycle lengths so reminders keep tracking the expected rhythm.
func Due(t domain.ReminderTarget, today time.Time) (Reminder, bool) {
	length := t.AvgCycleLength
	if length <= 0 {
		length = cycle.DefaultCycleLength
	}
	today = cycle.DateOnly(today)
	start := currentStart(t.LastStart, length, today)

	fertileStart, ovulation, _ := cycle.FertileWindow(start, length)
	nextPeriod := cycle.NextPeriod(start, length)

	var kind Kind
	switch {
	case today.Equal(fertileStart):
		kind = KindFertileStart
	case today.Equal(ovulation):
		kind = KindOvulation
	case today.Equal(cycle.AddDays(nextPeriod, -periodLeadDays)):
		kind = KindPeriodSoon
	default:
		return Reminder{}, false
	}
	return Reminder{
		UserID: t.UserID,
		ChatID: t.ChatID,
		Kind:   kind,
		Text:   messageFor(kind, t.FirstName, fertileStart, ovulation, nextPeriod),
	}, true
}

func currentStart(lastStart time.Time, length int, today time.Time) time.Time {
	start := cycle.DateOnly(lastStart)
	if behind := cycle.DaysBetween(start, today); behind >= length {
		start = cycle.AddDays(start, (behind/length)*length)
	}
	return start
}

func messageFor(kind Kind, name string, fertileStart, ovulation, nextPeriod time.Time) string {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + html.EscapeString(name)
	}
	switch kind {
	case KindFertileStart:
		return fmt.Sprintf("🌼 %s, your <b>fertile window</b> starts today and runs through %s.",
			greeting, ovulation.AddDate(0, 0, 1).Format("Jan 2"))
	case KindOvulation:
		return fmt.Sprintf("⭐ %s, today is your estimated <b>ovulation day</b>, the peak of your fertile window.", greeting)
	default:
		return fmt.Sprintf("🩸 %s, your <b>period is expected in %d days</b> (%s). A heating pad and some rest go a long way.",
			greeting, periodLeadDays, nextPeriod.Format("Mon, Jan 2"))
	}
}
