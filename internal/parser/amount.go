package parser

import (
	"regexp"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

var (
	// Axis: "Total Payment Due 12,345.00 Dr"
	axisAmountPattern = regexp.MustCompile(`(?i)Total\s+Payment\s+Due\s+([\d,]+\.?\d*)\s+Dr`)
	// ICICI: "Total Amount Due INR 12,345.00"
	iciciAmountPattern = regexp.MustCompile(`(?i)Total\s+Amount\s+Due\s+INR\s+([\d,.]+)`)

	// Asterisk-marked summary amounts, used as a last resort. No DOTALL:
	// the marker and the number must sit on the same line.
	amountFallbackPattern = regexp.MustCompile(`\*.*?(\d{1,3}(?:,\d{3})+(?:\.\d{2})?)`)
)

// amountRules is the generic labeled cascade, tried after the two
// issuer-structural passes. The amount extractor runs on raw text, not the
// whitespace-collapsed variant, so `.` patterns carry (?s) to cross lines.
var amountRules = []rule{
	{regexp.MustCompile(`(?i)Total\s+Payment\s+Due\s+([\d,]+\.?\d*)\s+Dr`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)Total\s+Payment\s+Due[:\s]+([\d,]+\.?\d*)`), 0.85, models.MethodRegex},

	{regexp.MustCompile(`(?i)Total\s+Amount\s+Due\s+INR\s+([\d,.]+)`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)Total\s+Amount\s+Due[:\s]+INR\s+([\d,.]+)`), 0.85, models.MethodRegex},

	{regexp.MustCompile(`(?is)Total\s+Amount\s+Due.*?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?is)\*\s*Total\s+Amount\s+Due.*?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), 0.85, models.MethodRegex},

	// SBI: "*Total Amount Due (₹) 15,234.50"
	{regexp.MustCompile(`(?i)\*Total\s+Amount\s+Due\s*\([₹\$]\)\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)\*Total\s+Amount\s+Due[:\s]*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)Total\s+Amount\s+Due\s*\([₹\$]\)\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)Total\s+Amount\s+Due[:\s]*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), 0.85, models.MethodRegex},

	// Kotak: "Total Amount Due (TAD) Rs. 9,876.00"
	{regexp.MustCompile(`(?i)Total\s+Amount\s+Due\s+\(TAD\)\s+(?:Rs\.?|₹)?\s*([\d,]+\.?\d*)`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)Total\s+Amount\s+Due\s+\(Payable\)\s+(?:Rs\.?|₹)?\s*([\d,]+\.?\d*)`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)TAD[:\-\s]+(?:Rs\.?|₹)?\s*([\d,]+\.?\d*)`), 0.85, models.MethodRegex},

	// Generic labels with optional currency marker
	{regexp.MustCompile(`(?i)total\s+(?:amount\s+)?due[:\-\s]*(?:Rs\.?|INR|₹)?\s*([\d,]+\.?\d*)`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)amount\s+payable[:\-\s]+(?:Rs\.?|INR|₹)?\s*([\d,]+\.?\d*)`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)(?:minimum\s+)?payment\s+due[:\-\s]+(?:Rs\.?|INR|₹)?\s*([\d,]+\.?\d*)`), 0.85, models.MethodRegex},
	{regexp.MustCompile(`(?i)outstanding\s+(?:balance|amount)[:\-\s]+(?:Rs\.?|INR|₹)?\s*([\d,]+\.?\d*)`), 0.85, models.MethodRegex},
}

// pickAmount gates a cascade match on a successful decimal parse: a
// captured string that does not parse as a number is a non-match and the
// cascade continues.
func pickAmount(groups []string) (string, bool) {
	raw, ok := lastGroup(groups)
	if !ok {
		return "", false
	}
	d, err := parseAmount(raw)
	if err != nil {
		log.WithField("capture", raw).Debug("amount capture did not parse, continuing cascade")
		return "", false
	}
	return formatAmount(d), true
}

// ExtractTotalAmountDue extracts the statement's total amount due,
// rendered as a rupee string with two decimal places.
func ExtractTotalAmountDue(text, issuer string) models.ExtractedField {
	// Issuer-structural passes carry higher confidence than the cascade.
	for _, re := range []*regexp.Regexp{axisAmountPattern, iciciAmountPattern} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if value, ok := pickAmount(m); ok {
			return models.Found(value, 0.95, models.MethodRegex)
		}
	}

	field, ok := runCascade(text, amountRules, pickAmount)
	if ok {
		return field
	}

	if m := amountFallbackPattern.FindStringSubmatch(prefix(text, 3000)); m != nil {
		if value, ok := pickAmount(m); ok {
			return models.Found(value, 0.70, models.MethodFallback)
		}
	}

	return models.NotFound()
}
