package quickadd

import (
	"testing"
	"time"
)

// Wednesday, January 15, 2025
var base = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func testOpts() *Options {
	o := Options{Now: base}.normalized()
	return &o
}

func firstDate(t *testing.T, text string) time.Time {
	t.Helper()
	results := extractDates(text, testOpts())
	if len(results) == 0 {
		t.Fatalf("no date extracted from %q", text)
	}
	d, ok := results[0].Value.(time.Time)
	if !ok {
		t.Fatalf("date value has type %T", results[0].Value)
	}
	return d
}

func TestExtractDates(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		text string
		want time.Time
	}{
		{"do it today", day(15)},
		{"do it tomorrow", day(16)},
		{"do it next week", day(22)},
		{"call mom friday", day(17)},
		{"call mom next friday", day(17)},
		{"review wednesday", day(22)}, // today's weekday jumps a full week
		{"pay rent 1/20", day(20)},
		{"party 01/20/2025", day(20)},
		{"birthday 1/10", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)}, // passed, rolls to next year
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := firstDate(t, tt.text)
			if !got.Equal(tt.want) {
				t.Errorf("date = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractDatesRejectsImpossible(t *testing.T) {
	for _, text := range []string{"meet 2/30", "meet 13/5", "meet 0/10"} {
		if results := extractDates(text, testOpts()); len(results) != 0 {
			t.Errorf("extractDates(%q) = %v, want none", text, results)
		}
	}
}

func TestExtractTimes(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"meet 3pm", "15:00"},
		{"meet at 3pm", "15:00"},
		{"meet at 3:30pm", "15:30"},
		{"meet 15:00", "15:00"},
		{"meet at 9am", "09:00"},
		{"meet 12am", "00:00"},
		{"meet 12pm", "12:00"},
		{"meet 12:15am", "00:15"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			results := extractTimes(tt.text, testOpts())
			if len(results) != 1 {
				t.Fatalf("got %d results, want 1: %v", len(results), results)
			}
			if got := results[0].Value.(string); got != tt.want {
				t.Errorf("time = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTimesPrefersLongerPhrase(t *testing.T) {
	results := extractTimes("standup at 3pm", testOpts())
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Raw != "at 3pm" {
		t.Errorf("Raw = %q, want %q (more specific match kept)", results[0].Raw, "at 3pm")
	}
}

func TestExtractTimesRejectsInvalid(t *testing.T) {
	for _, text := range []string{"meet 25:00", "meet 13pm", "meet 10:75", "meet 0pm"} {
		if results := extractTimes(text, testOpts()); len(results) != 0 {
			t.Errorf("extractTimes(%q) = %v, want none", text, results)
		}
	}
}
