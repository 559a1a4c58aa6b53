package parser

import (
	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// extractorFunc is one field extractor. Extractors are pure functions of
// the input text; the issuer label is passed through but does not branch
// the cascades — all issuers run the same rules.
type extractorFunc func(text, issuer string) models.ExtractedField

var fieldExtractors = []struct {
	key string
	fn  extractorFunc
}{
	{models.FieldCardLastFour, ExtractCardLastFour},
	{models.FieldBillingCycle, ExtractBillingCycle},
	{models.FieldDueDate, ExtractDueDate},
	{models.FieldTotalAmountDue, ExtractTotalAmountDue},
}

// ExtractFields runs the four field extractors against the statement text
// and attaches the issuer as a pseudo-field. Every key is always present
// in the result: a failed extractor yields a not-found or error field for
// that key only and never aborts the batch.
func ExtractFields(text, issuer string) models.ExtractionResult {
	issuerConfidence := 1.0
	if issuer == models.IssuerUnknown {
		issuerConfidence = 0.5
	}

	result := models.ExtractionResult{
		models.FieldIssuer: models.Found(issuer, issuerConfidence, models.MethodPatternMatching),
	}

	for _, fe := range fieldExtractors {
		field := safeExtract(fe.fn, text, issuer)
		result[fe.key] = field
		log.WithField("field", fe.key).
			WithField("method", field.Method).
			WithField("confidence", field.Confidence).
			Debug("field extracted")
	}

	return result
}

// safeExtract isolates a fault in one extractor to that field.
func safeExtract(fn extractorFunc, text, issuer string) (field models.ExtractedField) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("field extractor failed")
			field = models.ErrorField()
		}
	}()
	return fn(text, issuer)
}
