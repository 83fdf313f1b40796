// Package taxonomy loads the offense reference data used by the offense
// classifier. The taxonomy is read exactly once at process start; a missing or
// malformed file is fatal so the service never classifies against a partially
// loaded table.
package taxonomy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/campuswatch/extractor/internal/domain"
	"github.com/campuswatch/extractor/internal/logging"
)

// Sentinel errors for taxonomy loading.
var (
	// ErrEmpty indicates the taxonomy file contained no usable entries.
	ErrEmpty = errors.New("offense taxonomy is empty")
)

// Entry is one offense entry with its matching rule compiled.
type Entry struct {
	domain.OffenseEntry

	// Pattern is the compiled case-insensitive regex, or nil when the entry
	// matches by keywords only.
	Pattern *regexp.Regexp
}

// Taxonomy is the immutable, process-wide offense reference table.
// Entries keep the declaration order of the source document; equal-severity
// ties are broken by this order everywhere in the classifier.
type Taxonomy struct {
	entries []Entry
	byCode  map[string]int
}

// entryDoc is the wire shape of a single taxonomy entry in offense_list.json.
type entryDoc struct {
	Label    string   `json:"label"`
	Category string   `json:"category"`
	Severity int      `json:"severity"`
	Regex    string   `json:"regex,omitempty"`
	Keywords []string `json:"keywords"`
}

// Load reads and validates the taxonomy document at path.
// The file is a JSON object mapping offense code to entry; object key order
// is preserved. A regex that fails to compile is logged and the entry falls
// back to keyword matching; everything else wrong with the file is fatal.
func Load(path string, logger logging.Logger) (*Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open offense taxonomy %s: %w", path, err)
	}
	defer f.Close()

	tax, err := Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("parse offense taxonomy %s: %w", path, err)
	}

	logger.Info("offense taxonomy loaded",
		logging.String("path", path),
		logging.Int("entries", tax.Len()),
	)
	return tax, nil
}

// Parse decodes a taxonomy document from r, preserving declaration order.
// encoding/json maps are unordered, so the object is walked token by token.
func Parse(r io.Reader, logger logging.Logger) (*Taxonomy, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read taxonomy document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("taxonomy document must be a JSON object, got %v", tok)
	}

	tax := &Taxonomy{byCode: make(map[string]int)}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read taxonomy entry code: %w", err)
		}
		code, ok := keyTok.(string)
		if !ok || code == "" {
			return nil, fmt.Errorf("invalid taxonomy entry code %v", keyTok)
		}
		if _, dup := tax.byCode[code]; dup {
			return nil, fmt.Errorf("duplicate taxonomy entry code %q", code)
		}

		var doc entryDoc
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode taxonomy entry %q: %w", code, err)
		}

		entry, err := buildEntry(code, doc, logger)
		if err != nil {
			return nil, err
		}

		tax.byCode[code] = len(tax.entries)
		tax.entries = append(tax.entries, entry)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read taxonomy document end: %w", err)
	}

	if len(tax.entries) == 0 {
		return nil, ErrEmpty
	}
	return tax, nil
}

// buildEntry validates a decoded entry and compiles its regex.
func buildEntry(code string, doc entryDoc, logger logging.Logger) (Entry, error) {
	if doc.Label == "" {
		return Entry{}, fmt.Errorf("taxonomy entry %q has no label", code)
	}
	if doc.Category == "" {
		return Entry{}, fmt.Errorf("taxonomy entry %q has no category", code)
	}
	if doc.Severity < 0 {
		return Entry{}, fmt.Errorf("taxonomy entry %q has negative severity %d", code, doc.Severity)
	}
	if doc.Regex == "" && len(doc.Keywords) == 0 {
		return Entry{}, fmt.Errorf("taxonomy entry %q has neither regex nor keywords", code)
	}

	entry := Entry{
		OffenseEntry: domain.OffenseEntry{
			Code:     code,
			Label:    doc.Label,
			Category: doc.Category,
			Severity: doc.Severity,
			Regex:    doc.Regex,
			Keywords: doc.Keywords,
		},
	}

	if doc.Regex != "" {
		pattern, err := regexp.Compile("(?i)" + doc.Regex)
		if err != nil {
			// A single broken pattern must not take the service down, but
			// silently dropping it would change matching behavior.
			logger.Warn("taxonomy regex failed to compile, falling back to keywords",
				logging.String("code", code),
				logging.String("regex", doc.Regex),
				logging.Error(err),
			)
			if len(doc.Keywords) == 0 {
				return Entry{}, fmt.Errorf("taxonomy entry %q: regex invalid and no keywords: %w", code, err)
			}
		} else {
			entry.Pattern = pattern
		}
	}

	return entry, nil
}

// Entries returns the taxonomy entries in declaration order.
// The returned slice must not be modified.
func (t *Taxonomy) Entries() []Entry {
	return t.entries
}

// Len returns the number of entries.
func (t *Taxonomy) Len() int {
	return len(t.entries)
}

// ByCode looks up an entry by its offense code.
func (t *Taxonomy) ByCode(code string) (Entry, bool) {
	idx, ok := t.byCode[code]
	if !ok {
		return Entry{}, false
	}
	return t.entries[idx], true
}
