// Package issueref extracts issue-tracker references from merge request titles.
package issueref

import (
	"regexp"
	"strings"
)

// Extractor matches titles against an ordered list of patterns.
type Extractor struct {
	patterns []*regexp.Regexp
}

// NewExtractor creates an extractor. Patterns are tried in the given order.
func NewExtractor(patterns []*regexp.Regexp) *Extractor {
	return &Extractor{patterns: patterns}
}

// Extract returns the first capture group of the first pattern matching title.
// Later patterns are not tried once one matches, even if its first group is empty.
func (e *Extractor) Extract(title string) (string, bool) {
	if e == nil {
		return "", false
	}

	for _, re := range e.patterns {
		m := re.FindStringSubmatchIndex(title)
		if m == nil {
			continue
		}
		if len(m) < 4 || m[2] < 0 || m[2] == m[3] {
			return "", false
		}
		return title[m[2]:m[3]], true
	}
	return "", false
}

// Link builds the tracker URL for an issue id.
func Link(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/" + id
}
