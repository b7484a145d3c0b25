package quickadd

import "strings"

// rule pairs a compiled pattern with a value converter. The converter may
// reject a match (ok=false), which simply produces no result — malformed
// input never fails a parse.
type rule struct {
	re    pattern
	value func(groups []string) (any, bool)
}

type pattern interface {
	FindAllStringSubmatchIndex(s string, n int) [][]int
}

type extractOptions struct {
	// handleOverlaps resolves overlapping spans: a new match replaces an
	// accepted one only when strictly longer; equal or shorter overlapping
	// matches are dropped silently.
	handleOverlaps bool
}

// extract applies an ordered rule list to text and collects typed results.
// Result order follows rule order, then left-to-right match order.
func extract(text string, opts *Options, rules []rule, typ ResultType, xo extractOptions) []Result {
	var results []Result

	for _, r := range rules {
		for _, idx := range r.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := idx[0], idx[1]
			// group 1 spans the raw tag without the leading boundary
			if len(idx) >= 4 && idx[2] >= 0 {
				start, end = idx[2], idx[3]
			}
			raw := text[start:end]
			if opts.Disabled[strings.ToLower(raw)] {
				continue
			}

			groups := make([]string, 0, len(idx)/2)
			for g := 0; g < len(idx); g += 2 {
				if idx[g] < 0 {
					groups = append(groups, "")
				} else {
					groups = append(groups, text[idx[g]:idx[g+1]])
				}
			}

			value, ok := r.value(groups)
			if !ok {
				continue
			}

			res := Result{Type: typ, Raw: raw, Value: value, Start: start, End: end}
			if xo.handleOverlaps {
				results = resolveOverlap(results, res)
			} else {
				results = append(results, res)
			}
		}
	}

	return results
}

// resolveOverlap inserts next unless it overlaps an accepted result; on
// overlap the strictly longer match wins.
func resolveOverlap(accepted []Result, next Result) []Result {
	kept := accepted[:0]
	insert := true
	for _, a := range accepted {
		if !spansOverlap(a.Start, a.End, next.Start, next.End) {
			kept = append(kept, a)
			continue
		}
		if next.End-next.Start > a.End-a.Start {
			continue // drop the shorter accepted match
		}
		insert = false
		kept = append(kept, a)
	}
	if insert {
		kept = append(kept, next)
	}
	return kept
}

func spansOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
