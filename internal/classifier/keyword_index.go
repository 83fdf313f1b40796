package classifier

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/campuswatch/extractor/internal/taxonomy"
)

// keywordIndex is an Aho-Corasick automaton over every keyword in the
// taxonomy. It answers "which entries could possibly match this text" in a
// single pass, so the per-entry scan only visits candidates. The index is a
// pure prefilter: the authoritative keyword check stays with the entry's own
// declared-order scan.
type keywordIndex struct {
	matcher *ahocorasick.Matcher
	// owners maps automaton pattern index to taxonomy entry index.
	owners []int
}

func newKeywordIndex(tax *taxonomy.Taxonomy) *keywordIndex {
	var patterns [][]byte
	var owners []int
	for i, entry := range tax.Entries() {
		for _, kw := range entry.Keywords {
			patterns = append(patterns, []byte(strings.ToLower(kw)))
			owners = append(owners, i)
		}
	}
	if len(patterns) == 0 {
		return &keywordIndex{}
	}
	return &keywordIndex{
		matcher: ahocorasick.NewMatcher(patterns),
		owners:  owners,
	}
}

// candidates returns the set of taxonomy entry indexes whose keywords occur
// in text. Entries with a regex but no keywords are never filtered out here;
// the caller always runs regexes. The thread-safe match variant keeps the
// automaton read-only, so one index serves concurrent scans.
func (ix *keywordIndex) candidates(text string) map[int]bool {
	if ix.matcher == nil {
		return nil
	}
	hits := ix.matcher.MatchThreadSafe([]byte(strings.ToLower(text)))
	set := make(map[int]bool, len(hits))
	for _, h := range hits {
		set[ix.owners[h]] = true
	}
	return set
}
