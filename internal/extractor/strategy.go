// Package extractor turns normalized complaint text into a structured,
// confidence-scored extraction result. Every extractor in this package is a
// prioritized cascade of patterns: patterns are tried in declared order and
// the first acceptable capture wins.
package extractor

import (
	"regexp"
	"strings"
)

// firstCapture runs patterns in priority order against text and returns the
// first non-empty capture that passes accept. accept may be nil.
func firstCapture(text string, patterns []*regexp.Regexp, accept func(string) bool) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil || len(m) < 2 {
			continue
		}
		capture := strings.TrimSpace(m[1])
		if capture == "" {
			continue
		}
		if accept != nil && !accept(capture) {
			continue
		}
		return capture, true
	}
	return "", false
}

// allCaptures returns every capture of every pattern, in pattern priority
// order, that passes accept. Used where a cascade considers multiple
// candidates before rejecting (narrative name scanning).
func allCaptures(text string, patterns []*regexp.Regexp) []string {
	var out []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 {
				continue
			}
			capture := strings.TrimSpace(m[1])
			if capture != "" {
				out = append(out, capture)
			}
		}
	}
	return out
}
