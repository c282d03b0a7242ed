package pii

import "regexp"

// Patterns covering the identifiers most likely to survive a cleaning
// pass. Matching any of them marks the text as still carrying PII.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),       // email
	regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),                            // phone
	regexp.MustCompile(`\b\d{5}(?:[-\s]\d{4})?\b`),                                 // ZIP code
	regexp.MustCompile(`https?://(www\.)?linkedin\.com/in/[a-zA-Z0-9-]+`),          // LinkedIn profile
	regexp.MustCompile(`https?://(www\.)?github\.com/[a-zA-Z0-9-]+`),               // GitHub profile
}

// ContainsPII reports whether the text still matches any known PII pattern
func ContainsPII(text string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
