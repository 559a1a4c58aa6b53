package parser

import (
	"strings"
	"testing"
)

func TestPrefix(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{"shorter than window", "abc", 10, "abc"},
		{"exact length", "abc", 3, "abc"},
		{"ascii truncation", "abcdef", 4, "abcd"},
		{"zero window", "abc", 0, ""},
		{"empty input", "", 5, ""},
		{
			name: "multi-byte runes count as one character",
			s:    strings.Repeat("₹", 10) + "abcdef",
			n:    12,
			want: strings.Repeat("₹", 10) + "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prefix(tt.s, tt.n); got != tt.want {
				t.Errorf("prefix(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}

// A rupee-heavy preamble must not shrink the character windows the
// positional heuristics search in.
func TestPrefixWindowSurvivesCurrencySymbols(t *testing.T) {
	padding := strings.Repeat("₹ ", 300) // 600 runes, 1200 bytes
	date := "15/08/2025"
	text := padding + "some filler text " + date

	window := prefix(collapseWhitespace(text), 1000)
	if !strings.Contains(window, date) {
		t.Errorf("window %q does not reach %q", window, date)
	}
}

func TestDashNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"26 Jul 2025", "26-Jul-2025"},
		{"03 Aug 25", "03-Aug-25"},
		{"26-Jul-2025", "26-Jul-2025"},
		{"01/01/2024", "01/01/2024"},
	}

	for _, tt := range tests {
		if got := dashNormalize(tt.in); got != tt.want {
			t.Errorf("dashNormalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
