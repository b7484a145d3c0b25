package quickadd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	relativeDayRe = regexp.MustCompile(`(?i)\b(today|tomorrow|next\s+week)\b`)

	weekdayRe = regexp.MustCompile(`(?i)\b((?:next\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday))\b`)

	// MM/DD with optional year
	numericDateRe = regexp.MustCompile(`\b((\d{1,2})/(\d{1,2})(?:/(\d{4}))?)\b`)

	// 15:00, 3:30pm, optionally "at "-prefixed; the longer "at ..." form
	// wins overlap resolution against the bare time
	clockTimeRe = regexp.MustCompile(`(?i)` + boundary + `((?:at\s+)?(\d{1,2}):(\d{2})\s?(am|pm)?)\b`)

	// 3pm, at 11am
	meridiemTimeRe = regexp.MustCompile(`(?i)` + boundary + `((?:at\s+)?(\d{1,2})\s?(am|pm))\b`)
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// extractDates recognizes the fixed relative/absolute date vocabulary.
// Matched phrases stay in the title: "Meeting tomorrow" still reads well,
// unlike structural tags.
func extractDates(text string, opts *Options) []Result {
	now := opts.Now

	rules := []rule{
		{
			re: relativeDayRe,
			value: func(groups []string) (any, bool) {
				switch normalizeSpaces(groups[1]) {
				case "today":
					return dayStart(now), true
				case "tomorrow":
					return dayStart(now.AddDate(0, 0, 1)), true
				case "next week":
					return dayStart(now.AddDate(0, 0, 7)), true
				}
				return nil, false
			},
		},
		{
			re: weekdayRe,
			value: func(groups []string) (any, bool) {
				target, ok := weekdays[strings.ToLower(groups[2])]
				if !ok {
					return nil, false
				}
				daysUntil := int(target - now.Weekday())
				if daysUntil <= 0 {
					daysUntil += 7
				}
				return dayStart(now.AddDate(0, 0, daysUntil)), true
			},
		},
		{
			re: numericDateRe,
			value: func(groups []string) (any, bool) {
				month, _ := strconv.Atoi(groups[2])
				day, _ := strconv.Atoi(groups[3])
				year := now.Year()
				explicitYear := groups[4] != ""
				if explicitYear {
					year, _ = strconv.Atoi(groups[4])
				}

				d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
				if int(d.Month()) != month || d.Day() != day {
					return nil, false // 2/30 and friends
				}
				if !explicitYear && d.Before(dayStart(now)) {
					d = d.AddDate(1, 0, 0)
				}
				return d, true
			},
		},
	}

	return extract(text, opts, rules, ResultDate, extractOptions{handleOverlaps: true})
}

// extractTimes recognizes time-of-day phrases and normalizes them to
// 24-hour "HH:MM". Like dates, the phrases are left in the title.
func extractTimes(text string, opts *Options) []Result {
	rules := []rule{
		{
			re: clockTimeRe,
			value: func(groups []string) (any, bool) {
				return clockValue(groups[2], groups[3], groups[4])
			},
		},
		{
			re: meridiemTimeRe,
			value: func(groups []string) (any, bool) {
				return clockValue(groups[2], "00", groups[3])
			},
		},
	}
	return extract(text, opts, rules, ResultTime, extractOptions{handleOverlaps: true})
}

func clockValue(hourStr, minuteStr, meridiem string) (any, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return nil, false
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute > 59 {
		return nil, false
	}

	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 1 || hour > 12 {
			return nil, false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return nil, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return nil, false
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
