// Package catalog builds the deduplicated song catalog that every setlist
// row is resolved against. Identity is the exact token sequence of a title,
// never its display string.
package catalog

import (
	"fmt"
	"sort"

	"github.com/franz/setforge/internal/model"
	"github.com/franz/setforge/internal/title"
)

// CoverAlbum is the album label for songs that appear only in setlists.
const CoverAlbum = "Cover"

// Entry is one catalog song together with its matching token sequence.
type Entry struct {
	SongID    int
	Title     string
	Album     string
	IsOuttake bool
	Tokens    []string
}

// Catalog is the built song catalog. Entries are ordered by ascending
// SongID and the catalog is read-only once built.
type Catalog struct {
	Entries []Entry
	byKey   map[string]int // title.Key(tokens) -> SongID
}

// Result carries build statistics for logging.
type Result struct {
	SessionSongs      int
	CoverSongs        int
	DuplicatesSkipped int
	EmptySkipped      int
}

// Build consolidates session records and the raw setlist title strings into
// a catalog with dense 1-based song ids. Session songs come first in input
// order; titles seen only in setlists are appended as covers, ordered by
// their token-sequence key so a rerun over the same inputs assigns the same
// ids.
func Build(cfg title.Config, sessions []model.SessionRecord, setlistTitles []string) (*Catalog, *Result) {
	c := &Catalog{byKey: make(map[string]int)}
	res := &Result{}

	for _, rec := range sessions {
		if rec.Song == "" {
			res.EmptySkipped++
			continue
		}
		tokens := cfg.Tokenize(rec.Song)
		if len(tokens) == 0 {
			res.EmptySkipped++
			continue
		}
		key := title.Key(tokens)
		if _, seen := c.byKey[key]; seen {
			res.DuplicatesSkipped++
			continue
		}
		c.add(Entry{
			Title:     cfg.Display(rec.Song),
			Album:     cfg.Album(rec.Session),
			IsOuttake: rec.IsOuttake(),
			Tokens:    tokens,
		}, key)
		res.SessionSongs++
	}

	// Setlist titles whose token sequence is absent from the session
	// catalog are assumed to be covers. Multiple raw spellings can
	// tokenize identically, so group first and pick one representative
	// spelling per group.
	groups := make(map[string]*coverGroup)
	seenRaw := make(map[string]bool)
	for _, raw := range setlistTitles {
		if raw == "" || seenRaw[raw] {
			continue
		}
		seenRaw[raw] = true
		tokens := cfg.Tokenize(raw)
		if len(tokens) == 0 {
			continue
		}
		key := title.Key(tokens)
		if _, known := c.byKey[key]; known {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &coverGroup{tokens: tokens, representative: raw}
			groups[key] = g
			continue
		}
		if betterRepresentative(raw, g.representative) {
			g.representative = raw
		}
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		g := groups[key]
		display := cfg.Display(g.representative)
		if display == "" {
			continue
		}
		c.add(Entry{
			Title:  display,
			Album:  CoverAlbum,
			Tokens: g.tokens,
		}, key)
		res.CoverSongs++
	}

	return c, res
}

type coverGroup struct {
	tokens         []string
	representative string
}

// betterRepresentative prefers the shortest raw spelling, ties broken
// lexicographically, so group representatives do not depend on input order.
func betterRepresentative(candidate, current string) bool {
	if len(candidate) != len(current) {
		return len(candidate) < len(current)
	}
	return candidate < current
}

func (c *Catalog) add(e Entry, key string) {
	e.SongID = len(c.Entries) + 1
	c.Entries = append(c.Entries, e)
	c.byKey[key] = e.SongID
}

// IDForSequence returns the song id whose token sequence equals tokens
// exactly, if any.
func (c *Catalog) IDForSequence(tokens []string) (int, bool) {
	id, ok := c.byKey[title.Key(tokens)]
	return id, ok
}

// Songs converts the catalog to the output relation rows.
func (c *Catalog) Songs() []model.Song {
	songs := make([]model.Song, 0, len(c.Entries))
	for _, e := range c.Entries {
		songs = append(songs, model.Song{
			SongID:    e.SongID,
			Title:     e.Title,
			Album:     e.Album,
			IsOuttake: e.IsOuttake,
		})
	}
	return songs
}

// Validate asserts the catalog invariant: no two entries share a token
// sequence. The builder cannot produce such a catalog; a violation means a
// bug, and callers treat it as fatal.
func (c *Catalog) Validate() error {
	seen := make(map[string]int, len(c.Entries))
	for _, e := range c.Entries {
		key := title.Key(e.Tokens)
		if other, dup := seen[key]; dup {
			return fmt.Errorf("catalog entries %d and %d share token sequence %q", other, e.SongID, key)
		}
		seen[key] = e.SongID
	}
	return nil
}
