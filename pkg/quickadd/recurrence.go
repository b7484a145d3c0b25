package quickadd

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dohsimpson/TaskTrove-sub016/pkg/rrule"
)

// optional " at 9am" suffix contributing BYHOUR
const atHour = `(?:\s+at\s+(\d{1,2})\s?(am|pm)?)?`

var (
	everyIntervalRe = regexp.MustCompile(`(?i)\b(every\s+(\d+)\s+(days?|weeks?|months?)` + atHour + `)\b`)

	monthOnRe = regexp.MustCompile(`(?i)\b(every\s+month\s+on\s+the\s+(\d{1,2})(?:st|nd|rd|th)?` + atHour + `)\b`)

	lastDayRe = regexp.MustCompile(`(?i)\b(last\s+day\s+of\s+(?:every|the)\s+month` + atHour + `)\b`)

	everyWeekdayNameRe = regexp.MustCompile(`(?i)\b(every\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)` + atHour + `)\b`)

	everyWeekdaysRe = regexp.MustCompile(`(?i)\b(every\s+weekday` + atHour + `)\b`)

	simpleFreqRe = regexp.MustCompile(`(?i)\b((?:every\s+(day|week|month|year)|daily|weekly|monthly|yearly|annually)` + atHour + `)\b`)
)

var weekdayToCode = map[string]string{
	"sunday":    "SU",
	"monday":    "MO",
	"tuesday":   "TU",
	"wednesday": "WE",
	"thursday":  "TH",
	"friday":    "FR",
	"saturday":  "SA",
}

var unitToFreq = map[string]rrule.Frequency{
	"day":   rrule.FreqDaily,
	"week":  rrule.FreqWeekly,
	"month": rrule.FreqMonthly,
	"year":  rrule.FreqYearly,
}

// extractRecurrence recognizes recurrence phrases and emits constructed
// RRULE strings. More specific phrases ("every month on the 3rd") beat the
// bare frequency they contain via overlap resolution.
func extractRecurrence(text string, opts *Options) []Result {
	rules := []rule{
		{
			re: monthOnRe,
			value: func(groups []string) (any, bool) {
				day, err := strconv.Atoi(groups[2])
				if err != nil || day < 1 || day > 31 {
					return nil, false
				}
				return buildRule(rrule.Rule{Freq: rrule.FreqMonthly, ByMonthDay: []int{day}}, groups[3], groups[4])
			},
		},
		{
			re: lastDayRe,
			value: func(groups []string) (any, bool) {
				return buildRule(rrule.Rule{Freq: rrule.FreqMonthly, ByMonthDay: []int{-1}}, groups[2], groups[3])
			},
		},
		{
			re: everyIntervalRe,
			value: func(groups []string) (any, bool) {
				n, err := strconv.Atoi(groups[2])
				if err != nil || n < 1 {
					return nil, false
				}
				freq, ok := unitToFreq[strings.TrimSuffix(strings.ToLower(groups[3]), "s")]
				if !ok {
					return nil, false
				}
				return buildRule(rrule.Rule{Freq: freq, Interval: n}, groups[4], groups[5])
			},
		},
		{
			re: everyWeekdayNameRe,
			value: func(groups []string) (any, bool) {
				code, ok := weekdayToCode[strings.ToLower(groups[2])]
				if !ok {
					return nil, false
				}
				return buildRule(rrule.Rule{Freq: rrule.FreqWeekly, ByDay: []string{code}}, groups[3], groups[4])
			},
		},
		{
			re: everyWeekdaysRe,
			value: func(groups []string) (any, bool) {
				return buildRule(rrule.Rule{Freq: rrule.FreqWeekly, ByDay: []string{"MO", "TU", "WE", "TH", "FR"}}, groups[2], groups[3])
			},
		},
		{
			re: simpleFreqRe,
			value: func(groups []string) (any, bool) {
				word := strings.ToLower(groups[2])
				if word == "" {
					// bare keyword form: daily, weekly, monthly, yearly, annually
					switch {
					case hasFold(groups[1], "daily"):
						word = "day"
					case hasFold(groups[1], "weekly"):
						word = "week"
					case hasFold(groups[1], "monthly"):
						word = "month"
					default:
						word = "year"
					}
				}
				freq, ok := unitToFreq[word]
				if !ok {
					return nil, false
				}
				return buildRule(rrule.Rule{Freq: freq}, groups[3], groups[4])
			},
		},
	}

	return extract(text, opts, rules, ResultRecurrence, extractOptions{handleOverlaps: true})
}

func buildRule(r rrule.Rule, hourStr, meridiem string) (any, bool) {
	if hourStr != "" {
		hour, err := strconv.Atoi(hourStr)
		if err != nil {
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
		r.ByHour = &hour
	}
	return r.String(), true
}

func hasFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}
