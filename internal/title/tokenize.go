package title

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Replacement is a single literal substring substitution. Replacements are
// applied in slice order, so multi-character entries (" - ") must precede
// their single-character counterparts ("-").
type Replacement struct {
	Old string
	New string
}

// Config holds the substitution tables used by tokenization and display
// canonicalization. Build one with DefaultConfig and pass it down; there is
// no package-level mutable state.
type Config struct {
	// Replacements runs before word extraction and before display casing.
	Replacements []Replacement
	// DisplayFixes corrects known irregular canonicalizer outputs,
	// keyed by the exact post-capitalization string.
	DisplayFixes map[string]string
	// AlbumFixes corrects session names, keyed by the lower-cased
	// whitespace-collapsed session name.
	AlbumFixes map[string]string
}

// DefaultConfig returns the substitution tables used in production.
func DefaultConfig() Config {
	return Config{
		Replacements: []Replacement{
			{"(", " "}, {")", " "},
			{"[", " "}, {"]", " "},
			{"{", " "}, {"}", " "},
			{"!", ""}, {"?", ""}, {".", ""},
			{"&", " and "}, {"+", " and "},
			{"/", " "}, {"\\", " "},
			{" - ", " "}, {"-", " "}, {"_", " "},
			{":", ""}, {";", ""}, {"\"", ""},
		},
		DisplayFixes: map[string]string{
			"4Th Of July Asbury Park Sandy": "4th Of July Asbury Park (Sandy)",
			"4th Of July Asbury Park Sandy": "4th Of July Asbury Park (Sandy)",
			"Born In The Usa":               "Born In The U.S.A.",
		},
		AlbumFixes: map[string]string{
			"born in the usa": "Born in the U.S.A.",
		},
	}
}

// applyReplacements runs the ordered substitution table over s.
func (c Config) applyReplacements(s string) string {
	for _, r := range c.Replacements {
		s = strings.ReplaceAll(s, r.Old, r.New)
	}
	return s
}

// Tokenize reduces a raw title to its ordered list of matching tokens:
// lower-cased words with punctuation stripped and in-word apostrophes kept.
// Two titles that tokenize identically are the same song. The function is
// pure and deterministic; identifier assignment depends on that.
func (c Config) Tokenize(raw string) []string {
	if raw == "" {
		return nil
	}
	s := strings.ToLower(norm.NFC.String(raw))
	s = c.applyReplacements(s)

	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		// Apostrophes survive inside a word ("don't") but not at its
		// edges ("'round" -> "round").
		tok := strings.Trim(b.String(), "'")
		if tok != "" {
			tokens = append(tokens, tok)
		}
		b.Reset()
	}
	for _, r := range s {
		if isWordRune(r) || r == '\'' {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// Key returns the canonical identity key for a token sequence. It exists so
// callers comparing or mapping sequences agree on one representation.
func Key(tokens []string) string {
	return strings.Join(tokens, " ")
}

// isWordRune reports whether r belongs inside a token. Titles are not
// ASCII-only, so accented letters count.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
