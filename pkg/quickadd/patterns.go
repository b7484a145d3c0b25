package quickadd

import (
	"regexp"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// boundary requires a tag to start the string or follow whitespace, so
// "#work" is never found inside "x#work". Group 1 always spans the raw tag.
const boundary = `(?:^|\s)`

// token is the generic identifier class for tag bodies: letters, digits,
// underscore and hyphen. RE2 is always in Unicode mode, so \p{L} covers
// accented names without extra flags.
const token = `[\p{L}\p{N}_-]+`

// candidatePatterns caches compiled candidate alternations. Parses are
// per-call but callers tend to pass the same known-project list every time,
// so the cache is effectively process-wide and read-mostly.
var candidatePatterns *lru.Cache[string, *regexp.Regexp]

func init() {
	candidatePatterns, _ = lru.New[string, *regexp.Regexp](128)
}

// tagPattern builds a boundary-safe pattern for prefix-tagged tokens.
// With candidates it matches any candidate name verbatim (case-insensitive,
// longest first so "Work Tasks" beats "Work"); without, the generic token
// class. Group 1 is the whole tag, group 2 the token body.
func tagPattern(prefix string, candidates []string) *regexp.Regexp {
	if len(candidates) == 0 {
		return regexp.MustCompile(boundary + `(` + regexp.QuoteMeta(prefix) + `(` + token + `))`)
	}

	key := prefix + "\x00" + strings.Join(candidates, "\x00")
	if re, ok := candidatePatterns.Get(key); ok {
		return re
	}

	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	escaped := make([]string, len(sorted))
	for i, c := range sorted {
		escaped[i] = regexp.QuoteMeta(c)
	}

	re := regexp.MustCompile(`(?i)` + boundary + `(` + regexp.QuoteMeta(prefix) + `(` + strings.Join(escaped, "|") + `)\b)`)
	candidatePatterns.Add(key, re)
	return re
}

func candidateNames(cs []Candidate) []string {
	if len(cs) == 0 {
		return nil
	}
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}
