// Package match resolves raw performance titles against the song catalog
// using ordered-subsequence containment. Performance listings tend to wrap a
// clean title in qualifiers ("(Tempo Intro)", "[Snippet]"); a catalog entry
// whose tokens all appear in the query in order is still "present", and the
// longest such entry is the most specific one.
package match

import "github.com/franz/setforge/internal/catalog"

// Matcher scans a fixed catalog. It is read-only after construction and safe
// to share across all rows of a run.
type Matcher struct {
	entries []catalog.Entry
}

// New builds a matcher over the catalog. Entries are already in ascending
// song-id order, which is what makes the tie-break below stable.
func New(c *catalog.Catalog) *Matcher {
	return &Matcher{entries: c.Entries}
}

// Match returns the id of the best catalog entry for the query tokens:
// among entries whose token sequence is an ordered subsequence of the query,
// the one with the most tokens, lowest song id winning ties. The second
// return is false when nothing matches; callers drop the row rather than
// defaulting.
func (m *Matcher) Match(query []string) (int, bool) {
	if len(query) == 0 {
		return 0, false
	}
	bestID, bestLen := 0, 0
	for _, e := range m.entries {
		if len(e.Tokens) == 0 || len(e.Tokens) > len(query) {
			continue
		}
		if len(e.Tokens) > bestLen && isSubsequence(e.Tokens, query) {
			bestID, bestLen = e.SongID, len(e.Tokens)
		}
	}
	if bestID == 0 {
		return 0, false
	}
	return bestID, true
}

// isSubsequence reports whether every token of needle appears in haystack in
// the same relative order, not necessarily contiguously.
func isSubsequence(needle, haystack []string) bool {
	i := 0
	for _, tok := range haystack {
		if i == len(needle) {
			return true
		}
		if tok == needle[i] {
			i++
		}
	}
	return i == len(needle)
}
