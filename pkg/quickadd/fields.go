package quickadd

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// p1..p4, word-bounded so "p1" inside "up1" or "p10" never matches
	priorityRe = regexp.MustCompile(`(?i)\b(p([1-4]))\b`)

	// ~30min, ~2h — magnitude and unit, boundary-safe
	estimationRe = regexp.MustCompile(`(?i)` + boundary + `(~(\d+)\s?(hours|hour|hrs|hr|h|minutes|minute|mins|min|m))\b`)
)

func extractPriority(text string, opts *Options) []Result {
	rules := []rule{{
		re: priorityRe,
		value: func(groups []string) (any, bool) {
			n, err := strconv.Atoi(groups[2])
			if err != nil || n < 1 || n > 4 {
				return nil, false
			}
			return n, true
		},
	}}
	return extract(text, opts, rules, ResultPriority, extractOptions{})
}

// extractProject prefers exact candidate matches (multi-word, case
// insensitive) and falls back to generic #token matching when the known
// project list produces nothing.
func extractProject(text string, opts *Options) []Result {
	tokenValue := func(groups []string) (any, bool) {
		if groups[2] == "" {
			return nil, false
		}
		return groups[2], true
	}

	if names := candidateNames(opts.Projects); len(names) > 0 {
		candRule := []rule{{re: tagPattern("#", names), value: func(groups []string) (any, bool) {
			return canonicalName(names, groups[2]), true
		}}}
		if results := extract(text, opts, candRule, ResultProject, extractOptions{}); len(results) > 0 {
			return results
		}
	}

	generic := []rule{{re: tagPattern("#", nil), value: tokenValue}}
	return extract(text, opts, generic, ResultProject, extractOptions{})
}

// extractLabels returns every label in input order, duplicates preserved.
// Known multi-word label names win over the generic prefix match.
func extractLabels(text string, opts *Options) []Result {
	tokenValue := func(groups []string) (any, bool) {
		if groups[2] == "" {
			return nil, false
		}
		return groups[2], true
	}

	var rules []rule
	if names := candidateNames(opts.Labels); len(names) > 0 {
		rules = append(rules, rule{re: tagPattern("@", names), value: func(groups []string) (any, bool) {
			return canonicalName(names, groups[2]), true
		}})
	}
	rules = append(rules, rule{re: tagPattern("@", nil), value: tokenValue})

	results := extract(text, opts, rules, ResultLabel, extractOptions{handleOverlaps: true})
	sort.SliceStable(results, func(i, j int) bool { return results[i].Start < results[j].Start })
	return results
}

func extractEstimation(text string, opts *Options) []Result {
	rules := []rule{{
		re: estimationRe,
		value: func(groups []string) (any, bool) {
			n, err := strconv.Atoi(groups[2])
			if err != nil || n <= 0 {
				return nil, false
			}
			switch strings.ToLower(groups[3])[0] {
			case 'h':
				return n * 3600, true
			case 'm':
				return n * 60, true
			}
			return nil, false
		},
	}}
	return extract(text, opts, rules, ResultEstimation, extractOptions{})
}

// canonicalName maps a case-insensitive match back to the caller's exact
// candidate spelling.
func canonicalName(names []string, matched string) string {
	for _, n := range names {
		if strings.EqualFold(n, matched) {
			return n
		}
	}
	return matched
}
