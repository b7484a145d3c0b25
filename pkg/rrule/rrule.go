// Package rrule implements the RFC 5545 recurrence-rule subset used by the
// quick-add parser: construction, validation, and first-occurrence ("anchor")
// resolution. It is not a full RRULE expansion engine.
package rrule

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix starts every serialized recurrence rule.
const Prefix = "RRULE:"

// Frequency is the FREQ component of a rule.
type Frequency string

const (
	FreqDaily   Frequency = "DAILY"
	FreqWeekly  Frequency = "WEEKLY"
	FreqMonthly Frequency = "MONTHLY"
	FreqYearly  Frequency = "YEARLY"
)

// Weekday codes in RFC 5545 order (SU=0 .. SA=6).
var weekdayCodes = []string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// Rule is a parsed recurrence rule. Zero values mean "not set".
type Rule struct {
	Freq       Frequency
	Interval   int    // 0 means the default of 1
	Count      int    // mutually exclusive with Until
	Until      string // YYYYMMDD[THHMMSS[Z]]
	ByDay      []string
	ByMonth    []int
	ByMonthDay []int // negative values count from month end
	ByHour     *int
}

// Parse decodes an "RRULE:" string. It tolerates unknown keys but rejects
// strings without the prefix, without FREQ, or with malformed numeric values.
func Parse(s string) (Rule, error) {
	var r Rule
	if !strings.HasPrefix(s, Prefix) {
		return r, fmt.Errorf("missing %q prefix", Prefix)
	}

	for _, part := range strings.Split(strings.TrimPrefix(s, Prefix), ";") {
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found || value == "" {
			return Rule{}, fmt.Errorf("malformed component %q", part)
		}

		var err error
		switch strings.ToUpper(key) {
		case "FREQ":
			r.Freq = Frequency(strings.ToUpper(value))
		case "INTERVAL":
			r.Interval, err = strconv.Atoi(value)
		case "COUNT":
			r.Count, err = strconv.Atoi(value)
		case "UNTIL":
			r.Until = value
		case "BYDAY":
			r.ByDay = strings.Split(strings.ToUpper(value), ",")
		case "BYMONTH":
			r.ByMonth, err = intList(value)
		case "BYMONTHDAY":
			r.ByMonthDay, err = intList(value)
		case "BYHOUR":
			var h int
			if h, err = strconv.Atoi(value); err == nil {
				r.ByHour = &h
			}
		}
		if err != nil {
			return Rule{}, fmt.Errorf("component %q: %w", part, err)
		}
	}

	if r.Freq == "" {
		return Rule{}, fmt.Errorf("rule has no FREQ")
	}
	return r, nil
}

// String serializes the rule in canonical key order.
func (r Rule) String() string {
	parts := []string{"FREQ=" + string(r.Freq)}
	if r.Interval > 1 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(r.Interval))
	}
	if r.Count > 0 {
		parts = append(parts, "COUNT="+strconv.Itoa(r.Count))
	}
	if r.Until != "" {
		parts = append(parts, "UNTIL="+r.Until)
	}
	if len(r.ByDay) > 0 {
		parts = append(parts, "BYDAY="+strings.Join(r.ByDay, ","))
	}
	if len(r.ByMonth) > 0 {
		parts = append(parts, "BYMONTH="+joinInts(r.ByMonth))
	}
	if len(r.ByMonthDay) > 0 {
		parts = append(parts, "BYMONTHDAY="+joinInts(r.ByMonthDay))
	}
	if r.ByHour != nil {
		parts = append(parts, "BYHOUR="+strconv.Itoa(*r.ByHour))
	}
	return Prefix + strings.Join(parts, ";")
}

func intList(value string) ([]int, error) {
	var out []int
	for _, v := range strings.Split(value, ",") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
