// Package textnorm cleans raw OCR or form text before any pattern matching.
package textnorm

import (
	"strings"
	"unicode"
)

// DefaultMaxRunes caps input length before normalization. Go's regexp engine
// is linear-time, so the cap bounds total work per extraction call even on
// adversarial input.
const DefaultMaxRunes = 100_000

// Normalizer standardizes raw text. Normalization is idempotent: running it
// on already-normalized text returns the text unchanged.
type Normalizer struct {
	// AllowListOnly replaces every character outside letters, digits,
	// whitespace, and `.,:;!?()-` with a space.
	AllowListOnly bool
	// MaxRunes truncates the input before processing. Zero means DefaultMaxRunes.
	MaxRunes int
}

// New returns a Normalizer with the default settings used by the extraction
// pipeline: allow-list filtering enabled, default length cap.
func New() *Normalizer {
	return &Normalizer{AllowListOnly: true}
}

// Normalize cleans raw text: truncates to the length cap, expands common
// shorthand, strips control characters, optionally removes characters outside
// the allow-list, and collapses whitespace runs to single spaces.
// Empty input yields an empty string; Normalize never fails.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = truncateRunes(text, n.maxRunes())

	// Shorthand expansion before filtering so the replacement survives the
	// allow-list pass.
	text = strings.ReplaceAll(text, "&", "and")

	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.IsControl(r):
			// Dropped entirely; OCR output is littered with these.
		case n.AllowListOnly && !allowed(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}

	return collapseSpaces(b.String())
}

// NormalizeLines is like Normalize but preserves line boundaries, which the
// template regime needs to terminate `Label: value` captures. Each line is
// normalized independently and blank lines are kept.
func (n *Normalizer) NormalizeLines(text string) string {
	if text == "" {
		return ""
	}

	text = truncateRunes(text, n.maxRunes())
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = n.Normalize(line)
	}
	return strings.Join(lines, "\n")
}

func (n *Normalizer) maxRunes() int {
	if n.MaxRunes > 0 {
		return n.MaxRunes
	}
	return DefaultMaxRunes
}

func allowed(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '.', ',', ':', ';', '!', '?', '(', ')', '-':
		return true
	}
	return false
}

func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if r == ' ' {
			if lastSpace {
				continue
			}
			lastSpace = true
		} else {
			lastSpace = false
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func truncateRunes(s string, maxRunes int) string {
	if len(s) <= maxRunes {
		// Byte length is an upper bound on rune count.
		return s
	}
	count := 0
	for i := range s {
		if count == maxRunes {
			return s[:i]
		}
		count++
	}
	return s
}
