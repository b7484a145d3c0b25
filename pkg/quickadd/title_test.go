package quickadd

import "testing"

func TestReconcileTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		consumed []Result
		want     string
	}{
		{
			name: "no consumed spans",
			text: "  plain   title  ",
			want: "plain title",
		},
		{
			name:     "middle span",
			text:     "Buy milk p1 today",
			consumed: []Result{{Raw: "p1", Start: 9, End: 11}},
			want:     "Buy milk today",
		},
		{
			name: "adjacent spans leave a single space",
			text: "Buy milk p1 #groceries",
			consumed: []Result{
				{Raw: "p1", Start: 9, End: 11},
				{Raw: "#groceries", Start: 12, End: 22},
			},
			want: "Buy milk",
		},
		{
			name: "unsorted input",
			text: "a #x b @y c",
			consumed: []Result{
				{Raw: "@y", Start: 7, End: 9},
				{Raw: "#x", Start: 2, End: 4},
			},
			want: "a b c",
		},
		{
			name: "overlapping spans cut once",
			text: "meet at 3pm sharp",
			consumed: []Result{
				{Raw: "at 3pm", Start: 5, End: 11},
				{Raw: "3pm", Start: 8, End: 11},
			},
			want: "meet sharp",
		},
		{
			name:     "punctuation survives",
			text:     "Call mom, p2 then dad!",
			consumed: []Result{{Raw: "p2", Start: 10, End: 12}},
			want:     "Call mom, then dad!",
		},
		{
			name:     "span at start",
			text:     "p1 urgent thing",
			consumed: []Result{{Raw: "p1", Start: 0, End: 2}},
			want:     "urgent thing",
		},
		{
			name:     "span at end",
			text:     "wrap up ~30min",
			consumed: []Result{{Raw: "~30min", Start: 8, End: 14}},
			want:     "wrap up",
		},
		{
			name:     "everything consumed",
			text:     "#inbox",
			consumed: []Result{{Raw: "#inbox", Start: 0, End: 6}},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reconcileTitle(tt.text, tt.consumed); got != tt.want {
				t.Errorf("reconcileTitle(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
