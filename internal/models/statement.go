package models

import "time"

// Extraction methods reported alongside each field.
const (
	MethodRegex           = "regex"
	MethodFallback        = "fallback"
	MethodPatternMatching = "pattern_matching"
	MethodNotFound        = "not_found"
	MethodError           = "error"
)

// Supported issuer labels, in classifier declaration order.
const (
	IssuerICICI   = "ICICI Bank"
	IssuerHDFC    = "HDFC Bank"
	IssuerSBI     = "SBI Card"
	IssuerAxis    = "Axis Bank"
	IssuerKotak   = "Kotak Mahindra"
	IssuerUnknown = "Unknown"
)

// Field keys of an ExtractionResult.
const (
	FieldIssuer         = "issuer"
	FieldCardLastFour   = "card_last_four"
	FieldBillingCycle   = "billing_cycle"
	FieldDueDate        = "due_date"
	FieldTotalAmountDue = "total_amount_due"
)

// FieldKeys is the canonical field ordering for responses and reports.
var FieldKeys = []string{
	FieldIssuer,
	FieldCardLastFour,
	FieldBillingCycle,
	FieldDueDate,
	FieldTotalAmountDue,
}

// ExtractedField is the outcome of a single field extraction.
// Value is nil when nothing was found. Confidence is in [0.0, 1.0].
type ExtractedField struct {
	Value      *string `json:"value"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// Found builds a populated field result.
func Found(value string, confidence float64, method string) ExtractedField {
	return ExtractedField{Value: &value, Confidence: confidence, Method: method}
}

// NotFound is the soft-failure result: no rule matched.
func NotFound() ExtractedField {
	return ExtractedField{Value: nil, Confidence: 0.0, Method: MethodNotFound}
}

// ErrorField marks a field whose extractor failed internally.
func ErrorField() ExtractedField {
	return ExtractedField{Value: nil, Confidence: 0.0, Method: MethodError}
}

// ExtractionResult maps every field key to its extracted value.
// All five keys are always present; extraction fails soft per field,
// never by omission.
type ExtractionResult map[string]ExtractedField

// OverallConfidence is the arithmetic mean of all per-field confidences.
// The issuer pseudo-field is included in the average. Fields are summed
// in canonical key order so the score is bit-for-bit reproducible for
// the same result.
func (r ExtractionResult) OverallConfidence() float64 {
	sum := 0.0
	n := 0
	for _, key := range FieldKeys {
		f, ok := r[key]
		if !ok {
			continue
		}
		sum += f.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// StringValue returns the field's value or "" when not found.
func (r ExtractionResult) StringValue(key string) string {
	f, ok := r[key]
	if !ok || f.Value == nil {
		return ""
	}
	return *f.Value
}

// ParsedStatement is the persisted record of one parse.
type ParsedStatement struct {
	ID              string    `json:"id"`
	Filename        string    `json:"filename"`
	Issuer          string    `json:"issuer"`
	CardLastFour    string    `json:"card_last_four"`
	BillingCycle    string    `json:"billing_cycle"`
	DueDate         string    `json:"due_date"`
	TotalAmountDue  string    `json:"total_amount_due"`
	ConfidenceScore float64   `json:"confidence_score"`
	RawText         string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}
