package title

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// UnknownTitle is the display title for inputs that clean down to nothing.
const UnknownTitle = "Unknown Title"

// UnknownAlbum is the album label for records with no session name.
const UnknownAlbum = "Unknown"

// Display builds the human-readable representative string for a raw title:
// same substitution table as Tokenize (but no word extraction), each
// whitespace-separated word capitalized, then the fix table applied. The
// result is cosmetic only — matching always goes through Tokenize.
func (c Config) Display(raw string) string {
	if raw == "" {
		return UnknownTitle
	}
	s := c.applyReplacements(norm.NFC.String(raw))

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	display := strings.Join(words, " ")
	if fixed, ok := c.DisplayFixes[display]; ok {
		display = fixed
	}
	if display == "" {
		return UnknownTitle
	}
	return display
}

// Album maps a raw session name to its album label: whitespace collapsed,
// known irregular names corrected, empty mapped to UnknownAlbum.
func (c Config) Album(session string) string {
	name := strings.Join(strings.Fields(session), " ")
	if name == "" {
		return UnknownAlbum
	}
	if fixed, ok := c.AlbumFixes[strings.ToLower(name)]; ok {
		return fixed
	}
	return name
}

// capitalize upper-cases the first rune and lower-cases the rest, matching
// the casing the rest of the data set was entered with.
func capitalize(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
