package parser

import (
	"regexp"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// issuerEntry pairs an issuer label with its detection patterns.
// Patterns cover the bank name, common abbreviations, and phrase anchors
// unique to that issuer's statement layout.
type issuerEntry struct {
	name     string
	patterns []*regexp.Regexp
}

// issuerTable is evaluated in declaration order: when two issuers' patterns
// would both match, the earlier entry wins. This makes detection
// deterministic and lets structural anchors (which are more ambiguous)
// sit behind the name-based patterns of the same issuer.
var issuerTable = []issuerEntry{
	{
		name: models.IssuerICICI,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ICICI\s+Bank`),
			regexp.MustCompile(`(?i)ICICIBANK`),
			regexp.MustCompile(`(?i)ICICI\s+Credit\s+Card`),
			regexp.MustCompile(`(?i)ICICI`),
			regexp.MustCompile(`(?is)VIEW\s+LAST\s+STATEMENT.*ICICI`),
			// ICICI statement header structure
			regexp.MustCompile(`(?is)Card\s+Holder\s+Name.*Statement\s+Date.*Payment\s+Due\s+Date`),
		},
	},
	{
		name: models.IssuerHDFC,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)HDFC\s+Bank`),
			regexp.MustCompile(`(?i)HDFCBANK`),
			regexp.MustCompile(`(?i)HDFC\s+Credit\s+Card`),
		},
	},
	{
		name: models.IssuerSBI,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)SBI\s+Card`),
			regexp.MustCompile(`(?i)State\s+Bank\s+of\s+India`),
			regexp.MustCompile(`(?i)SBICARD`),
		},
	},
	{
		name: models.IssuerAxis,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Axis\s+Bank`),
			regexp.MustCompile(`(?i)AXISBANK`),
			regexp.MustCompile(`(?i)Axis\s+Credit\s+Card`),
		},
	},
	{
		name: models.IssuerKotak,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)kotak`),
			regexp.MustCompile(`(?i)Kotak\s+Mahindra`),
			regexp.MustCompile(`(?i)Kotak\s+Bank`),
			regexp.MustCompile(`(?i)KOTAKBANK`),
			regexp.MustCompile(`(?i)My\s+Kotak`),
			regexp.MustCompile(`(?i)Kotak\s+Credit`),
		},
	},
}

// DetectIssuer matches statement text against the per-issuer pattern table
// and returns the first matching issuer, or "Unknown". Each pattern is
// checked against the full text and against the first 1000 characters
// separately, since the bank identity usually appears near the top.
func DetectIssuer(text string) string {
	preview := prefix(text, 1000)
	for _, entry := range issuerTable {
		for _, re := range entry.patterns {
			if re.MatchString(text) || re.MatchString(preview) {
				log.WithField("issuer", entry.name).Debug("issuer detected")
				return entry.name
			}
		}
	}
	log.Warn("could not detect issuer")
	return models.IssuerUnknown
}
