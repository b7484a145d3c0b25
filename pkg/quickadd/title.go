package quickadd

import (
	"sort"
	"strings"
)

// reconcileTitle removes the consumed token spans from the raw text and
// collapses the whitespace left behind. Date, time and recurrence phrases
// are deliberately not in the consumed set: they stay readable in the
// title, unlike structural tags.
func reconcileTitle(text string, consumed []Result) string {
	if len(consumed) == 0 {
		return strings.TrimSpace(collapseSpaces(text))
	}

	spans := make([][2]int, 0, len(consumed))
	for _, r := range consumed {
		spans = append(spans, [2]int{r.Start, r.End})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	var b strings.Builder
	pos := 0
	for _, s := range spans {
		start, end := s[0], s[1]
		if start < pos {
			start = pos // overlapping span, already cut
		}
		if end <= pos {
			continue
		}
		b.WriteString(text[pos:start])
		pos = end
	}
	b.WriteString(text[pos:])

	return strings.TrimSpace(collapseSpaces(b.String()))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
