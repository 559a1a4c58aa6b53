package parser

import (
	"regexp"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// cycleRules covers the date-range notations the five issuers use for the
// statement period. Each rule captures the start and end date.
var cycleRules = []rule{
	// Axis: "19/10/2019 - 18/11/2019" in the summary table row
	{regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s*-\s*(\d{2}/\d{2}/\d{4})`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)Statement\s+Period\s+(\d{2}/\d{2}/\d{4})\s*-\s*(\d{2}/\d{2}/\d{4})`), 0.85, models.MethodRegex},

	// ICICI: "Statement Period 27-08-2025 TO 26-09-2025"
	{regexp.MustCompile(`(?i)Statement\s+Period\s+(\d{2}-\d{2}-\d{4})\s+TO\s+(\d{2}-\d{2}-\d{4})`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)Billing\s+Period[:\s]+(\d{2}-\d{2}-\d{4})\s+TO\s+(\d{2}-\d{2}-\d{4})`), 0.85, models.MethodRegex},

	// SBI: "for Statement Period: 03 Aug 25 to 02 Sep 25"
	{regexp.MustCompile(`(?i)Statement\s+Period[:\s]+(\d{1,2}\s+[A-Za-z]{3}\s+\d{2})\s+to\s+(\d{1,2}\s+[A-Za-z]{3}\s+\d{2})`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)for\s+Statement\s+Period[:\s]+(\d{1,2}\s+[A-Za-z]{3}\s+\d{2})\s+to\s+(\d{1,2}\s+[A-Za-z]{3}\s+\d{2})`), 0.85, models.MethodRegex},

	// Kotak: "26-Jul-2025 to 25-Aug-2025"
	{regexp.MustCompile(`(?i)(\d{1,2}[\s\-][A-Za-z]{3}[\s\-]\d{4})[\s\w]*to[\s\w]*(\d{1,2}[\s\-][A-Za-z]{3}[\s\-]\d{4})`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)from\s+(\d{1,2}[\s\-][A-Za-z]{3}[\s\-]\d{4})\s+to\s+(\d{1,2}[\s\-][A-Za-z]{3}[\s\-]\d{4})`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)details\s+from\s+(\d{1,2}[\s\-][A-Za-z]{3}[\s\-]\d{4})\s+to\s+(\d{1,2}[\s\-][A-Za-z]{3}[\s\-]\d{4})`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)Transaction\s+details\s+from\s+(\d{1,2}[\s\-][A-Za-z]{3}[\s\-]\d{4})\s+to\s+(\d{1,2}[\s\-][A-Za-z]{3}[\s\-]\d{4})`), 0.85, models.MethodRegex},

	// Generic
	{regexp.MustCompile(`(?i)(?:billing|statement)\s+(?:period|cycle|date)[:\-\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})\s+to\s+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)statement\s+from\s+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})\s+to\s+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})\s+to\s+(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)(\d{1,2}-[A-Za-z]{3}-\d{4})\s+to\s+(\d{1,2}-[A-Za-z]{3}-\d{4})`), 0.85, models.MethodRegex},
}

// cycleFallbackDate matches a single loose "D Mon YY[YY]" date.
var cycleFallbackDate = regexp.MustCompile(`\d{1,2}[-\s][A-Za-z]{3}[-\s]\d{2,4}`)

// ExtractBillingCycle extracts the statement's billed date range as
// "<start> to <end>". Whitespace is collapsed first because layouts wrap
// ranges across lines. Dates without slashes are normalized to dashes.
func ExtractBillingCycle(text, issuer string) models.ExtractedField {
	clean := collapseWhitespace(text)

	field, ok := runCascade(clean, cycleRules, func(groups []string) (string, bool) {
		if len(groups) < 3 || groups[1] == "" || groups[2] == "" {
			return "", false
		}
		return dashNormalize(groups[1]) + " to " + dashNormalize(groups[2]), true
	})
	if ok {
		return field
	}

	// Fallback: the first two loose dates near the top of the document.
	dates := cycleFallbackDate.FindAllString(prefix(clean, 2000), -1)
	if len(dates) >= 2 {
		return models.Found(dates[0]+" to "+dates[1], 0.70, models.MethodFallback)
	}

	return models.NotFound()
}
