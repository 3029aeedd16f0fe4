// Package util holds small string helpers shared by the demo commands.
package util

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// maxSuggestionDistance is the largest edit distance still offered as a
// "did you mean" suggestion.
const maxSuggestionDistance = 2

// JoinOrNone joins strings with ", " or returns "(none)" for empty slices.
func JoinOrNone(items []string) string {
	return JoinOrDefault(items, "(none)")
}

// JoinOrDefault joins strings with ", " or returns the default value for empty slices.
func JoinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// LevenshteinDistance counts the single-rune edits that turn a into b.
// Insertions, deletions and substitutions each cost one.
func LevenshteinDistance(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}

// SuggestSimilar returns up to limit candidates close to input, nearest
// first. Matching ignores case.
func SuggestSimilar(input string, candidates []string, limit int) []string {
	if input == "" || len(candidates) == 0 {
		return nil
	}

	type match struct {
		name     string
		distance int
	}
	var matches []match
	lower := strings.ToLower(input)
	for _, c := range candidates {
		if d := LevenshteinDistance(lower, strings.ToLower(c)); d <= maxSuggestionDistance {
			matches = append(matches, match{name: c, distance: d})
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].distance < matches[j].distance })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
