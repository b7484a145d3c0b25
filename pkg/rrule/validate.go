package rrule

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrCountAndUntil is returned when a rule sets both COUNT and UNTIL.
var ErrCountAndUntil = errors.New("COUNT and UNTIL are mutually exclusive")

// UNTIL layouts accepted by RFC 5545: date, local date-time, UTC date-time.
var untilLayouts = []string{"20060102", "20060102T150405", "20060102T150405Z"}

// Validate checks a rule against the strict subset contract. It is used
// before persisting a fully formed rule; the lenient extraction path
// (NextAnchor) never calls it so free-text parsing cannot fail the user.
func (r Rule) Validate() error {
	if r.Count > 0 && r.Until != "" {
		return ErrCountAndUntil
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Freq,
			validation.Required,
			validation.In(FreqDaily, FreqWeekly, FreqMonthly, FreqYearly)),
		validation.Field(&r.Interval, validation.Min(0), validation.Max(999)),
		validation.Field(&r.Count, validation.Min(0)),
		validation.Field(&r.Until, validation.By(checkUntil)),
		validation.Field(&r.ByDay,
			validation.Each(validation.In(anyOfWeekdayCodes()...))),
		validation.Field(&r.ByMonth,
			validation.Each(validation.Min(1), validation.Max(12))),
		validation.Field(&r.ByMonthDay, validation.By(checkMonthDays)),
		validation.Field(&r.ByHour, validation.By(checkHour)),
	)
}

// ValidateString parses and validates a serialized rule in one step.
func ValidateString(s string) error {
	r, err := Parse(s)
	if err != nil {
		return err
	}
	return r.Validate()
}

func anyOfWeekdayCodes() []interface{} {
	out := make([]interface{}, len(weekdayCodes))
	for i, c := range weekdayCodes {
		out[i] = c
	}
	return out
}

func checkUntil(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, layout := range untilLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return nil
		}
	}
	return fmt.Errorf("invalid UNTIL date %q", s)
}

func checkMonthDays(value interface{}) error {
	days, _ := value.([]int)
	for _, d := range days {
		if d == 0 || d < -31 || d > 31 {
			return fmt.Errorf("BYMONTHDAY %d out of range", d)
		}
	}
	return nil
}

func checkHour(value interface{}) error {
	var h int
	switch v := value.(type) {
	case int:
		h = v
	case *int:
		if v == nil {
			return nil
		}
		h = *v
	default:
		return nil
	}
	if h < 0 || h > 23 {
		return fmt.Errorf("BYHOUR %d out of range", h)
	}
	return nil
}
