package evaluation

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// Departments is the catalog of known business units. Submitters may
// type anything; CanonicalDepartment folds near-misses ("hr",
// "Finanace") onto these entries so the prompt and the report carry a
// consistent vocabulary.
var Departments = []string{
	"Human Resources",
	"Finance",
	"Operations",
	"Customer Service",
	"Marketing",
	"Sales",
	"IT / Technology",
	"Legal",
	"Risk & Compliance",
}

// departmentAliases maps common shorthand directly, ahead of the
// fuzzy pass.
var departmentAliases = map[string]string{
	"hr":         "Human Resources",
	"it":         "IT / Technology",
	"tech":       "IT / Technology",
	"technology": "IT / Technology",
	"compliance": "Risk & Compliance",
	"risk":       "Risk & Compliance",
	"support":    "Customer Service",
}

// departmentMatchThreshold is the minimum similarity for a fuzzy
// match; below it the submitter's text is kept as-is.
const departmentMatchThreshold = 0.75

// Unicode case folder shared across calls; cases.Fold is the correct
// tool for caseless matching, unlike ToLower.
var foldCaser = cases.Fold()

// CanonicalDepartment maps free-text department input onto the known
// catalog. Exact and alias matches win immediately; otherwise the
// catalog entry with the highest Levenshtein similarity at or above
// the threshold is chosen. Unmatched input is returned trimmed, and
// blank input becomes the NotSpecified placeholder handled upstream.
func CanonicalDepartment(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	folded := foldCaser.String(trimmed)

	if canonical, ok := departmentAliases[folded]; ok {
		return canonical
	}

	best := ""
	bestScore := 0.0
	for _, dept := range Departments {
		score := similarity(folded, foldCaser.String(dept))
		if score == 1.0 {
			return dept
		}
		if score > bestScore {
			best, bestScore = dept, score
		}
	}

	if bestScore >= departmentMatchThreshold {
		return best
	}
	return trimmed
}

// similarity converts Levenshtein distance into a 0.0-1.0 score.
// Distance and length are both measured in runes so multi-byte
// characters do not skew the ratio.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}
