package parser

import (
	"regexp"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

var (
	// Billing-cycle boundary dates get excluded from due-date candidates:
	// summary tables place the statement period and the due date side by
	// side, and a naive match conflates them.
	billingRangePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s*-\s*(\d{2}/\d{2}/\d{4})`)

	// Axis summary table header, followed eventually by the first date of
	// the data row beneath it.
	axisTableHeaderPattern = regexp.MustCompile(`(?is)Total\s+Payment\s+Due\s+Minimum\s+Payment\s+Due\s+Statement\s+Period\s+Payment\s+Due\s+Date.*?(\d{2}/\d{2}/\d{4})`)

	slashDatePattern = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

	// ICICI: "Payment Due Date 22-10-2025"
	iciciDueDatePattern = regexp.MustCompile(`(?i)Payment\s+Due\s+Date\s+(\d{2}-\d{2}-\d{4})`)

	monthDatePattern = regexp.MustCompile(`\d{1,2}\s+[A-Za-z]{3}\s+\d{4}`)
	dueOrPaymentWord = regexp.MustCompile(`(?i)(?:due|payment)`)
)

// dueDateRules is the generic cascade, tried after the issuer-structural
// passes. Labeled formats come before the loose proximity patterns.
var dueDateRules = []rule{
	// DD/MM/YYYY labels (Axis)
	{regexp.MustCompile(`(?i)Payment\s+Due\s+Date[:\s]*(\d{2}/\d{2}/\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)Due\s+Date[:\s]*(\d{2}/\d{2}/\d{4})`), 0.9, models.MethodRegex},

	// DD-MM-YYYY labels (ICICI)
	{regexp.MustCompile(`(?i)Payment\s+Due\s+Date[:\s]*(\d{2}-\d{2}-\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)Due\s+Date[:\s]*(\d{2}-\d{2}-\d{4})`), 0.9, models.MethodRegex},

	// Month-name date near "payment"/"due"/"pay", either order
	{regexp.MustCompile(`(?i)(?:payment|due|pay).*?(\d{1,2}\s+[A-Za-z]{3}\s+\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)(\d{1,2}\s+[A-Za-z]{3}\s+\d{4}).*?(?:payment|due|pay)`), 0.9, models.MethodRegex},

	// SBI month-name labels
	{regexp.MustCompile(`(?i)Payment\s+Due\s+Date[:\s]*(\d{1,2}\s+[A-Za-z]{3}\s+\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)Due\s+Date[:\s]*(\d{1,2}\s+[A-Za-z]{3}\s+\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)Pay\s+(?:by|before)[:\s]*(\d{1,2}\s+[A-Za-z]{3}\s+\d{4})`), 0.9, models.MethodRegex},

	// Kotak "Remember to pay by 14-Sep-2025"
	{regexp.MustCompile(`(?i)pay\s+by\s+(\d{1,2}-[A-Za-z]{3}-\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)Remember\s+to\s+pay\s+by\s+(\d{1,2}-[A-Za-z]{3}-\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)by\s+(\d{1,2}-[A-Za-z]{3}-\d{4})`), 0.9, models.MethodRegex},

	{regexp.MustCompile(`(?i)Due[:\s]+(\d{1,2}\s+[A-Za-z]{3}\s+\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)Due[:\s]+(\d{1,2}-[A-Za-z]{3}-\d{4})`), 0.9, models.MethodRegex},

	// Generic numeric formats
	{regexp.MustCompile(`(?i)(?:payment\s+)?due\s+(?:date|by)[:\-\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)pay\s+by[:\-\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)due\s+on[:\-\s]+(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})`), 0.9, models.MethodRegex},
}

// ExtractDueDate extracts the payment due date. Billing-cycle boundary
// dates are identified up front and every candidate is checked against
// them; an excluded candidate skips to the next rule instead of being
// returned.
func ExtractDueDate(text, issuer string) models.ExtractedField {
	clean := collapseWhitespace(text)

	excluded := make(map[string]bool)
	if m := billingRangePattern.FindStringSubmatch(clean); m != nil {
		excluded[m[1]] = true
		excluded[m[2]] = true
		log.WithField("dates", []string{m[1], m[2]}).Debug("billing dates excluded from due-date candidates")
	}

	// Axis summary table: the due date column follows the statement
	// period columns, so the anchored header pattern is the most precise.
	if m := axisTableHeaderPattern.FindStringSubmatch(clean); m != nil {
		if due := m[1]; !excluded[due] {
			return models.Found(due, 0.95, models.MethodRegex)
		}
	}

	// Positional pass: among all DD/MM/YYYY dates in the summary region,
	// the LAST one that is not a billing boundary is the due date — the
	// due-date column sits after the billing-period column.
	if len(excluded) > 0 {
		var candidates []string
		for _, d := range slashDatePattern.FindAllString(prefix(clean, 1000), -1) {
			if !excluded[d] {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) > 0 {
			return models.Found(candidates[len(candidates)-1], 0.90, models.MethodRegex)
		}
	}

	if m := iciciDueDatePattern.FindStringSubmatch(clean); m != nil {
		return models.Found(m[1], 0.95, models.MethodRegex)
	}

	field, ok := runCascade(clean, dueDateRules, func(groups []string) (string, bool) {
		due, ok := lastGroup(groups)
		if !ok || excluded[due] {
			return "", false
		}
		return due, true
	})
	if ok {
		return field
	}

	// Fallback: when "due"/"payment" appears near the top, the second
	// month-name date tends to be the due date — the first is usually the
	// statement date.
	window := prefix(clean, 3000)
	if dueOrPaymentWord.MatchString(window) {
		dates := monthDatePattern.FindAllString(window, -1)
		if len(dates) >= 2 {
			return models.Found(dates[1], 0.70, models.MethodFallback)
		}
	}

	return models.NotFound()
}
