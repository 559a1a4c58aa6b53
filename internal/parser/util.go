package parser

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "parser")

// collapseWhitespace reduces every run of whitespace to a single space.
// Statement layouts wrap labels and date ranges across lines, so the
// cascades match against this normalized form.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// prefix returns the first n characters of s, or all of s if shorter.
// Several heuristics only look near the top of the document; the window
// counts runes, so currency symbols earlier in the text do not shrink it.
func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// parseAmount converts a captured amount string like "15,234.50" to a
// decimal. Thousands-separator commas are stripped before parsing.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	return decimal.NewFromString(s)
}

// formatAmount renders an amount as a rupee string with exactly two
// decimal places regardless of the source's precision.
func formatAmount(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

// dashNormalize rewrites internal whitespace of a date token to dashes,
// so "26 Jul 2025" becomes "26-Jul-2025". Slash-formatted dates are
// returned unchanged.
func dashNormalize(date string) string {
	if strings.Contains(date, "/") {
		return date
	}
	return strings.Join(strings.Fields(date), "-")
}
