// Package quickadd converts free-form task input such as
// "Buy milk p1 #groceries tomorrow at 3pm ~30min @urgent" into a structured
// task draft while keeping the visible title human-readable.
package quickadd

import "time"

// ResultType tags what kind of token an extraction produced.
type ResultType string

const (
	ResultPriority   ResultType = "priority"
	ResultProject    ResultType = "project"
	ResultLabel      ResultType = "label"
	ResultEstimation ResultType = "estimation"
	ResultDate       ResultType = "date"
	ResultTime       ResultType = "time"
	ResultRecurrence ResultType = "recurrence"
)

// Result is a single extracted token. Start/End span the raw token in the
// original text; spans are used only for overlap resolution and title
// reconciliation, never persisted.
type Result struct {
	Type  ResultType
	Raw   string // exact matched substring
	Value any
	Start int
	End   int // exclusive
}

// Candidate is a known project or label name supplied by the caller.
// Exact candidate matches (including multi-word names) are preferred over
// generic #token / @token matches.
type Candidate struct {
	Name string
}

// Options is the per-parse configuration. The zero value is valid: no
// disabled tokens, no known candidates, reference time of time.Now().
type Options struct {
	// Disabled contains lowercased matched substrings the parser must
	// ignore (e.g. "p1" to keep a literal "p1" in the title).
	Disabled map[string]bool

	Projects []Candidate
	Labels   []Candidate

	// Now anchors relative dates ("tomorrow", weekday names). Zero means
	// time.Now().
	Now time.Time
}

func (o Options) normalized() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Draft is the parsed task draft. Zero values mean the field was absent
// from the input.
type Draft struct {
	Title      string
	Priority   int      // 1 (highest) to 4, 0 when absent
	Project    string
	Labels     []string // input order, duplicates preserved
	DueDate    *time.Time
	Time       string // 24-hour "HH:MM"
	Estimation int    // whole seconds
	Recurring  string // "RRULE:..." string
}
