package rrule

import (
	"fmt"
	"time"
)

// Anchor is the first concrete occurrence computed from a rule and a
// reference date.
type Anchor struct {
	DueDate time.Time
	Time    string // "HH:MM:SS", empty when the rule has no BYHOUR
}

// NextAnchor computes the anchor for a serialized rule relative to ref.
// It returns nil when the string is not a parseable rule with a FREQ.
//
// Only the subset reachable from the quick-add recurrence extractor is
// resolved: DAILY fires immediately (ref unchanged), WEEKLY+BYDAY jumps to
// the next strictly-future occurrence of the first listed weekday, and
// MONTHLY+BYMONTHDAY picks the day in the reference month or the next one.
// YEARLY and bare MONTHLY fall back to ref unchanged; that is a known
// simplification, not a full occurrence search.
func NextAnchor(recurring string, ref time.Time) *Anchor {
	r, err := Parse(recurring)
	if err != nil {
		return nil
	}

	anchor := &Anchor{DueDate: ref}
	if r.ByHour != nil && *r.ByHour >= 0 && *r.ByHour <= 23 {
		anchor.Time = fmt.Sprintf("%02d:00:00", *r.ByHour)
	}

	switch r.Freq {
	case FreqWeekly:
		if len(r.ByDay) > 0 {
			if target, ok := weekdayIndex(r.ByDay[0]); ok {
				daysToAdd := target - int(ref.Weekday())
				// "today" never counts as the next weekly occurrence
				if daysToAdd <= 0 {
					daysToAdd += 7
				}
				anchor.DueDate = startOfDay(ref.AddDate(0, 0, daysToAdd))
			}
		}
	case FreqMonthly:
		if len(r.ByMonthDay) > 0 {
			anchor.DueDate = monthDayAnchor(r.ByMonthDay[0], ref)
		}
	}

	return anchor
}

// monthDayAnchor resolves BYMONTHDAY=n. Positive n picks the nth day of the
// reference month unless it already passed, then the nth of the next month.
// Negative n counts from the end of the reference month (-1 = last day).
func monthDayAnchor(n int, ref time.Time) time.Time {
	year, month, _ := ref.Date()
	loc := ref.Location()

	if n < 0 {
		last := daysInMonth(year, month)
		day := last + n + 1
		if day < 1 {
			day = 1
		}
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	}

	if n < ref.Day() {
		return time.Date(year, month+1, n, 0, 0, 0, 0, loc)
	}
	return time.Date(year, month, n, 0, 0, 0, 0, loc)
}

func weekdayIndex(code string) (int, bool) {
	for i, c := range weekdayCodes {
		if c == code {
			return i, true
		}
	}
	return 0, false
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
