package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the similarity score (0-100) used when none is configured.
const DefaultThreshold = 80

// indelParams weighs a substitution as one deletion plus one insertion, so
// Distance returns the insert/delete edit distance.
var indelParams = levenshtein.NewParams().SubCost(2)

// Normalize prepares a string for comparison: surrounding whitespace is
// trimmed, the text is put in NFC form and case-folded.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = norm.NFC.String(s)
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(s)
}

// Ratio returns the similarity of a and b on a 0-100 scale.
//
// The score is 100 * (1 - d / (len(a) + len(b))) where d is the number of
// single-rune insertions and deletions needed to turn one normalized string
// into the other. Two empty strings are identical.
func Ratio(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	if a == b {
		return 100
	}
	d := levenshtein.Distance(a, b, indelParams)
	return float64(total-d) * 100 / float64(total)
}

// Match reports whether input is close enough to candidate.
func Match(input, candidate string, threshold int) bool {
	return Ratio(input, candidate) >= float64(threshold)
}

// Matcher binds a threshold to the matching functions.
type Matcher struct {
	Threshold int
}

// New returns a Matcher using threshold, clamped to 0-100.
func New(threshold int) Matcher {
	switch {
	case threshold < 0:
		threshold = 0
	case threshold > 100:
		threshold = 100
	}
	return Matcher{Threshold: threshold}
}

// Match reports whether input matches candidate under m's threshold.
func (m Matcher) Match(input, candidate string) bool {
	return Match(input, candidate, m.Threshold)
}

// MatchAll returns every candidate that input matches, in candidate order.
func (m Matcher) MatchAll(input string, candidates []string) []string {
	var matched []string
	for _, c := range candidates {
		if m.Match(input, c) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Best returns the candidate with the highest ratio to input and that ratio.
// Ties go to the earlier candidate. ok is false when candidates is empty.
func (m Matcher) Best(input string, candidates []string) (best string, score float64, ok bool) {
	for i, c := range candidates {
		r := Ratio(input, c)
		if i == 0 || r > score {
			best, score = c, r
		}
	}
	return best, score, len(candidates) > 0
}
