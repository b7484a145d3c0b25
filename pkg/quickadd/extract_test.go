package quickadd

import (
	"testing"
)

func TestExtractSkipsDisabledTokens(t *testing.T) {
	o := testOpts()
	o.Disabled = map[string]bool{"p1": true}

	results := extractPriority("task P1 p2", o)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	// disabling is by lowercased raw text, so P1 is skipped too
	if got := results[0].Value.(int); got != 2 {
		t.Errorf("value = %d, want 2", got)
	}
}

func TestExtractSpans(t *testing.T) {
	text := "Buy milk p1 #groceries"
	results := extractPriority(text, testOpts())
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if text[r.Start:r.End] != r.Raw || r.Raw != "p1" {
		t.Errorf("span [%d,%d) = %q, Raw = %q", r.Start, r.End, text[r.Start:r.End], r.Raw)
	}
}

func TestResolveOverlapLongerWins(t *testing.T) {
	shorter := Result{Type: ResultTime, Raw: "3pm", Start: 8, End: 11}
	longer := Result{Type: ResultTime, Raw: "at 3pm", Start: 5, End: 11}

	// longer replaces an accepted shorter match
	out := resolveOverlap([]Result{shorter}, longer)
	if len(out) != 1 || out[0].Raw != "at 3pm" {
		t.Errorf("out = %v, want the longer match only", out)
	}

	// equal or shorter overlapping matches are dropped silently
	out = resolveOverlap([]Result{longer}, shorter)
	if len(out) != 1 || out[0].Raw != "at 3pm" {
		t.Errorf("out = %v, want the accepted longer match kept", out)
	}
	same := Result{Type: ResultTime, Raw: "at 3pm", Start: 5, End: 11}
	out = resolveOverlap([]Result{longer}, same)
	if len(out) != 1 {
		t.Errorf("out = %v, want equal-length duplicate dropped", out)
	}
}

func TestResolveOverlapDisjointKeepsBoth(t *testing.T) {
	a := Result{Raw: "3pm", Start: 0, End: 3}
	b := Result{Raw: "5pm", Start: 10, End: 13}
	out := resolveOverlap([]Result{a}, b)
	if len(out) != 2 {
		t.Errorf("out = %v, want both disjoint matches", out)
	}
}

func TestTagPatternBoundaries(t *testing.T) {
	re := tagPattern("#", nil)

	tests := []struct {
		text string
		want string // matched tag, "" for no match
	}{
		{"#work", "#work"},
		{"task #work now", "#work"},
		{"task #work-notes", "#work-notes"},
		{"issue#42", ""},
		{"x#work", ""},
		{"#café", "#café"},
	}

	for _, tt := range tests {
		m := re.FindStringSubmatchIndex(tt.text)
		if tt.want == "" {
			if m != nil {
				t.Errorf("tagPattern matched %q in %q, want no match", tt.text[m[2]:m[3]], tt.text)
			}
			continue
		}
		if m == nil {
			t.Fatalf("no match in %q, want %q", tt.text, tt.want)
		}
		if got := tt.text[m[2]:m[3]]; got != tt.want {
			t.Errorf("matched %q, want %q", got, tt.want)
		}
	}
}

func TestTagPatternCandidatesCached(t *testing.T) {
	first := tagPattern("#", []string{"Work Tasks", "Home"})
	second := tagPattern("#", []string{"Work Tasks", "Home"})
	if first != second {
		t.Error("expected cached *regexp.Regexp for identical candidate lists")
	}

	other := tagPattern("#", []string{"Other"})
	if first == other {
		t.Error("different candidate lists must not share a compiled pattern")
	}
}

func TestTagPatternLongestCandidateFirst(t *testing.T) {
	re := tagPattern("#", []string{"Work", "Work Tasks"})
	m := re.FindStringSubmatch("plan #work tasks")
	if m == nil {
		t.Fatal("no match")
	}
	if m[1] != "#work tasks" {
		t.Errorf("matched %q, want the longer candidate", m[1])
	}
}
