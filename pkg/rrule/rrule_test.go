package rrule

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Rule
		wantErr bool
	}{
		{
			name:  "Daily",
			input: "RRULE:FREQ=DAILY",
			want:  Rule{Freq: FreqDaily},
		},
		{
			name:  "Weekly With ByDay And ByHour",
			input: "RRULE:FREQ=WEEKLY;BYDAY=MO,WE;BYHOUR=15",
			want:  Rule{Freq: FreqWeekly, ByDay: []string{"MO", "WE"}, ByHour: intPtr(15)},
		},
		{
			name:  "Monthly Negative MonthDay",
			input: "RRULE:FREQ=MONTHLY;BYMONTHDAY=-1",
			want:  Rule{Freq: FreqMonthly, ByMonthDay: []int{-1}},
		},
		{
			name:  "Interval And Count",
			input: "RRULE:FREQ=DAILY;INTERVAL=3;COUNT=10",
			want:  Rule{Freq: FreqDaily, Interval: 3, Count: 10},
		},
		{
			name:  "Lowercase Keys Tolerated",
			input: "RRULE:freq=weekly;byday=fr",
			want:  Rule{Freq: FreqWeekly, ByDay: []string{"FR"}},
		},
		{
			name:    "Missing Prefix",
			input:   "FREQ=DAILY",
			wantErr: true,
		},
		{
			name:    "No Freq",
			input:   "RRULE:INTERVAL=2",
			wantErr: true,
		},
		{
			name:    "Malformed Interval",
			input:   "RRULE:FREQ=DAILY;INTERVAL=abc",
			wantErr: true,
		},
		{
			name:    "Garbage",
			input:   "INVALID",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Freq != tt.want.Freq || got.Interval != tt.want.Interval || got.Count != tt.want.Count {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
			if len(got.ByDay) != len(tt.want.ByDay) {
				t.Fatalf("ByDay = %v, want %v", got.ByDay, tt.want.ByDay)
			}
			for i := range got.ByDay {
				if got.ByDay[i] != tt.want.ByDay[i] {
					t.Errorf("ByDay[%d] = %q, want %q", i, got.ByDay[i], tt.want.ByDay[i])
				}
			}
			if (got.ByHour == nil) != (tt.want.ByHour == nil) {
				t.Fatalf("ByHour = %v, want %v", got.ByHour, tt.want.ByHour)
			}
			if got.ByHour != nil && *got.ByHour != *tt.want.ByHour {
				t.Errorf("ByHour = %d, want %d", *got.ByHour, *tt.want.ByHour)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"RRULE:FREQ=DAILY",
		"RRULE:FREQ=WEEKLY;BYDAY=MO",
		"RRULE:FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR",
		"RRULE:FREQ=MONTHLY;BYMONTHDAY=3",
		"RRULE:FREQ=MONTHLY;BYMONTHDAY=-1",
		"RRULE:FREQ=DAILY;INTERVAL=3",
		"RRULE:FREQ=DAILY;BYHOUR=9",
		"RRULE:FREQ=YEARLY",
	}
	for _, in := range inputs {
		r, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if out := r.String(); out != in {
			t.Errorf("round trip %q -> %q", in, out)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{"Valid Daily", Rule{Freq: FreqDaily}, false},
		{"Valid Weekly", Rule{Freq: FreqWeekly, ByDay: []string{"MO", "FR"}}, false},
		{"Valid Until Date", Rule{Freq: FreqDaily, Until: "20251231"}, false},
		{"Valid Until DateTime UTC", Rule{Freq: FreqDaily, Until: "20251231T120000Z"}, false},
		{"Invalid Freq", Rule{Freq: "HOURLY"}, true},
		{"Missing Freq", Rule{}, true},
		{"Interval Too Large", Rule{Freq: FreqDaily, Interval: 1000}, true},
		{"Bad ByDay Code", Rule{Freq: FreqWeekly, ByDay: []string{"XX"}}, true},
		{"Count And Until Conflict", Rule{Freq: FreqDaily, Count: 5, Until: "20251231"}, true},
		{"Bad Until", Rule{Freq: FreqDaily, Until: "2025-12-31"}, true},
		{"MonthDay Zero", Rule{Freq: FreqMonthly, ByMonthDay: []int{0}}, true},
		{"MonthDay Out Of Range", Rule{Freq: FreqMonthly, ByMonthDay: []int{32}}, true},
		{"Negative MonthDay Valid", Rule{Freq: FreqMonthly, ByMonthDay: []int{-1}}, false},
		{"ByHour Out Of Range", Rule{Freq: FreqDaily, ByHour: intPtr(24)}, true},
		{"ByMonth Out Of Range", Rule{Freq: FreqYearly, ByMonth: []int{13}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCountUntilSentinel(t *testing.T) {
	err := Rule{Freq: FreqDaily, Count: 1, Until: "20250101"}.Validate()
	if !errors.Is(err, ErrCountAndUntil) {
		t.Errorf("expected ErrCountAndUntil, got %v", err)
	}
}

func TestValidateString(t *testing.T) {
	if err := ValidateString("RRULE:FREQ=WEEKLY;BYDAY=MO;BYHOUR=9"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateString("not a rule"); err == nil {
		t.Errorf("expected parse error")
	}
	if err := ValidateString("RRULE:FREQ=WEEKLY;BYDAY=ZZ"); err == nil {
		t.Errorf("expected validation error for bad BYDAY")
	}
}

func intPtr(n int) *int { return &n }
