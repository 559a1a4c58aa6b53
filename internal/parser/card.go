package parser

import (
	"regexp"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// cardRules recognizes masked-card-number conventions, ordered from
// structurally unambiguous issuer layouts down to generic "****1234"
// forms. Generic patterns risk matching unrelated numeric sequences,
// so they must stay last.
var cardRules = []rule{
	// Axis: "Card No: 45145700****5541"
	{regexp.MustCompile(`(?i)Card\s+No[:\s]+\d+\*+(\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)Card\s+Number[:\s]+\d+\*+(\d{4})`), 0.9, models.MethodRegex},

	// SBI: "XXXX XXXX XXXX XX86" (last block may be truncated)
	{regexp.MustCompile(`(?i)X+\s+X+\s+X+\s+X*(\d{2,4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)Credit\s+Card\s+Number[:\s]+X+\s+X+\s+X+\s+X*(\d{2,4})`), 0.9, models.MethodRegex},

	// Kotak: "4147 XXXX XXXX 1420"
	{regexp.MustCompile(`(?i)(\d{4})\s+X+\s+X+\s+(\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)Primary\s+Card\s+Number[:\s]+\d+\s+X+\s+X+\s+(\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)Card\s+Number[:\s]+\d+\s+X+\s+X+\s+(\d{4})`), 0.9, models.MethodRegex},

	// Generic conventions
	{regexp.MustCompile(`(?i)card\s+(?:number|no\.?|#)?\s*[:\-]?\s*X+(\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)XXXX\s*XXXX\s*XXXX\s*(\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`(?i)(?:ending|last)\s+(?:digits?|4)?\s*[:\-]?\s*(\d{4})`), 0.9, models.MethodRegex},
	{regexp.MustCompile(`\*+\s*(\d{4})`), 0.9, models.MethodRegex},
}

// ExtractCardLastFour returns the visible last four digits of the card
// number. The last capturing group of the first matching rule wins, since
// partially-masked layouts capture the leading block as well.
func ExtractCardLastFour(text, issuer string) models.ExtractedField {
	field, _ := runCascade(text, cardRules, nil)
	return field
}
