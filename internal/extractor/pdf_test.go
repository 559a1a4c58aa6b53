package extractor

import (
	"os"
	"strings"
	"testing"
)

func TestTextQuality(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  float64
		max  float64
	}{
		{"plain english", "Credit Card Statement for July 2025", 0.99, 1.0},
		{"digits and punctuation", "Total Amount Due: 15,234.50 (due 15/08/2025)", 0.99, 1.0},
		{"rupee symbol counts as readable", "Amount: ₹5,000.00", 0.99, 1.0},
		{"garbage glyphs", strings.Repeat("�Ã©", 50), 0.0, 0.1},
		{"mixed half readable", "payment due" + strings.Repeat("�", 11), 0.4, 0.6},
		{"empty", "", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := textQuality(tt.text)
			if q < tt.min || q > tt.max {
				t.Errorf("textQuality(%q) = %f, want in [%f, %f]", tt.text, q, tt.min, tt.max)
			}
		})
	}
}

func TestContainsCommonWords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"statement header", "HDFC Bank Credit Card Statement", true},
		{"case insensitive", "TOTAL AMOUNT DUE", true},
		{"unrelated text", "lorem ipsum dolor sit amet", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containsCommonWords(tt.text); got != tt.expected {
				t.Errorf("containsCommonWords(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestIsReadableText(t *testing.T) {
	readable := "HDFC Bank Credit Card Statement. Total Amount Due: 15,234.50. " +
		"Payment Due Date: 15/08/2025. Statement Period: 16/06/2025 - 15/07/2025."
	garbage := strings.Repeat("�Ã", 200)
	short := "credit card"
	longButNoStatementWords := strings.Repeat("lorem ipsum dolor sit amet ", 10)

	if !isReadableText(readable) {
		t.Error("expected statement text to be readable")
	}
	if isReadableText(garbage) {
		t.Error("expected glyph garbage to be rejected")
	}
	if isReadableText(short) {
		t.Error("expected text under the length threshold to be rejected")
	}
	if isReadableText(longButNoStatementWords) {
		t.Error("expected text without statement vocabulary to be rejected")
	}
	if isReadableText("") {
		t.Error("expected empty text to be rejected")
	}

	// Exported wrapper behaves identically.
	if IsReadableText(readable) != isReadableText(readable) {
		t.Error("exported and internal readability checks disagree")
	}
}

func TestExtractMissingFile(t *testing.T) {
	if text := Extract("/nonexistent/path/statement.pdf"); text != "" {
		t.Errorf("expected empty text for missing file, got %q", text)
	}
}

func TestExtractNotAPDF(t *testing.T) {
	path := t.TempDir() + "/fake.pdf"
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if text := Extract(path); text != "" {
		t.Errorf("expected empty text for invalid PDF, got %q", text)
	}
}
