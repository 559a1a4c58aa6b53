package parser

import (
	"strings"
	"testing"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

func TestDetectIssuer(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "detects HDFC",
			text:     "HDFC Bank Credit Card Statement",
			expected: models.IssuerHDFC,
		},
		{
			name:     "detects SBI Card",
			text:     "SBI Card Payment Details",
			expected: models.IssuerSBI,
		},
		{
			name:     "detects ICICI",
			text:     "ICICI Bank Credit Card Monthly Statement",
			expected: models.IssuerICICI,
		},
		{
			name:     "detects Axis",
			text:     "Axis Bank Statement Period",
			expected: models.IssuerAxis,
		},
		{
			name:     "detects Kotak",
			text:     "Kotak Mahindra Bank Card Statement",
			expected: models.IssuerKotak,
		},
		{
			name:     "detects Kotak lowercase",
			text:     "my kotak credit card",
			expected: models.IssuerKotak,
		},
		{
			name:     "unknown bank",
			text:     "Some Random Bank Statement",
			expected: models.IssuerUnknown,
		},
		{
			name:     "empty text",
			text:     "",
			expected: models.IssuerUnknown,
		},
		{
			name:     "issuer name beyond the first 1000 characters still matches",
			text:     strings.Repeat("x ", 600) + "State Bank of India",
			expected: models.IssuerSBI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectIssuer(tt.text)
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

// Declaration order decides ties: when two issuers' patterns both match,
// the earlier entry in the table wins.
func TestDetectIssuerDeclarationOrderWins(t *testing.T) {
	text := "Transferred from Kotak Mahindra account to ICICI Bank credit card"
	if got := DetectIssuer(text); got != models.IssuerICICI {
		t.Errorf("got %q, want %q", got, models.IssuerICICI)
	}
}

func TestDetectIssuerIdempotent(t *testing.T) {
	text := "Axis Bank Statement Period"
	first := DetectIssuer(text)
	second := DetectIssuer(text)
	if first != second {
		t.Errorf("classifier not idempotent: %q vs %q", first, second)
	}
}
