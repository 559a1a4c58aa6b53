package parser

import (
	"regexp"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// rule is a single entry of an extraction cascade: a pattern, the confidence
// assigned to a match, and the method tag it reports. Rules are evaluated in
// declaration order and the first accepted match wins, so issuer-specific
// patterns must be listed before generic ones.
type rule struct {
	re         *regexp.Regexp
	confidence float64
	method     string
}

// pickFunc turns the submatches of a matched rule into a field value.
// Returning ok=false rejects the candidate and moves on to the next rule.
type pickFunc func(groups []string) (string, bool)

// lastGroup returns the last non-empty capturing group, or group 1.
// Mirrors cascades where alternate layouts capture the value in
// different group positions (e.g. "4147 XXXX XXXX 1420" captures twice
// and the trailing group holds the last four digits).
func lastGroup(groups []string) (string, bool) {
	for i := len(groups) - 1; i >= 1; i-- {
		if groups[i] != "" {
			return groups[i], true
		}
	}
	return "", false
}

// runCascade evaluates rules in order against text and returns the first
// accepted match. pick may be nil, in which case lastGroup is used.
func runCascade(text string, rules []rule, pick pickFunc) (models.ExtractedField, bool) {
	if pick == nil {
		pick = lastGroup
	}
	for i, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, ok := pick(m)
		if !ok {
			// Rejected candidate (excluded date, unparseable number) —
			// the cascade continues rather than failing.
			continue
		}
		log.WithField("rule", i).WithField("value", value).Debug("cascade matched")
		return models.Found(value, r.confidence, r.method), true
	}
	return models.NotFound(), false
}
