// Package linker resolves every raw setlist row to a (show, song, position)
// triple. Show lookup goes through the resolver's original-key map, song
// lookup through a contextual override table first and the sequence matcher
// second. Rows that resolve to nothing are dropped, counted, and logged —
// never defaulted.
package linker

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/franz/setforge/internal/catalog"
	"github.com/franz/setforge/internal/match"
	"github.com/franz/setforge/internal/model"
	"github.com/franz/setforge/internal/report"
	"github.com/franz/setforge/internal/shows"
	"github.com/franz/setforge/internal/title"
)

// Match methods, as counted in Stats and written to the event log.
const (
	MethodContextualStandard = "contextual-standard"
	MethodContextualOverride = "contextual-override"
	MethodSequenceSuccess    = "sequence-success"
	MethodSequenceFail       = "sequence-fail"
)

// Override declares a tour-dependent retitling: a title that normally
// resolves to one catalog entry resolves to an alternate entry on shows
// whose tour name falls in the alias set. Both titles are looked up in the
// catalog when the linker is built; if the standard title is absent the
// entry is disabled and rows fall through to sequence matching.
type Override struct {
	StandardTitle  string
	AlternateTitle string
	Tours          []string // tour names, compared case-insensitively
}

// DefaultOverrides returns the production override table: the acoustic
// arrangement of "Born In The USA" is its own catalog entry and is the one
// actually played on the Reunion tour.
func DefaultOverrides() []Override {
	return []Override{
		{
			StandardTitle:  "Born In The USA",
			AlternateTitle: "Born In The USA (Acoustic)",
			Tours:          []string{"reunion tour", "reunion"},
		},
	}
}

// Config holds linker configuration.
type Config struct {
	Title        title.Config
	Overrides    []Override
	Logger       *report.EventLogger // optional
	ShowProgress bool
}

// Stats counts link outcomes by method. Observational only; the entries
// slice is the contract.
type Stats struct {
	ContextualStandard int
	ContextualOverride int
	SequenceSuccess    int
	SequenceFail       int
	SkippedNoShow      int
	SkippedNoTitle     int
	DuplicatesSkipped  int
	Entries            int
}

// Matched returns the number of rows that resolved to a song.
func (s *Stats) Matched() int {
	return s.ContextualStandard + s.ContextualOverride + s.SequenceSuccess
}

// Linker links raw rows against a fixed catalog and show map.
type Linker struct {
	cfg       Config
	matcher   *match.Matcher
	overrides map[string]resolvedOverride // token key of the standard title
}

type resolvedOverride struct {
	standardID  int
	alternateID int // 0 when the alternate title is not in the catalog
	tours       map[string]bool
}

// New resolves the override table against the catalog. Overrides whose
// standard title is missing from the catalog are skipped with a warning in
// the returned error-free path; two overrides monitoring the same token
// sequence are a configuration error.
func New(cfg Config, cat *catalog.Catalog) (*Linker, error) {
	l := &Linker{
		cfg:       cfg,
		matcher:   match.New(cat),
		overrides: make(map[string]resolvedOverride),
	}
	for _, o := range cfg.Overrides {
		stdTokens := cfg.Title.Tokenize(o.StandardTitle)
		if len(stdTokens) == 0 {
			return nil, fmt.Errorf("override %q tokenizes to nothing", o.StandardTitle)
		}
		key := title.Key(stdTokens)
		if _, dup := l.overrides[key]; dup {
			return nil, fmt.Errorf("duplicate override for token sequence %q", key)
		}
		stdID, ok := cat.IDForSequence(stdTokens)
		if !ok {
			// Catalog has no such song this run; contextual logic
			// for this entry is disabled and rows fall through to
			// the sequence matcher.
			continue
		}
		altID := 0
		if altTokens := cfg.Title.Tokenize(o.AlternateTitle); len(altTokens) > 0 {
			if id, found := cat.IDForSequence(altTokens); found {
				altID = id
			}
		}
		tours := make(map[string]bool, len(o.Tours))
		for _, t := range o.Tours {
			tours[strings.ToLower(t)] = true
		}
		l.overrides[key] = resolvedOverride{standardID: stdID, alternateID: altID, tours: tours}
	}
	return l, nil
}

// Link processes the raw rows in input order and emits deduplicated setlist
// entries with dense 1-based ids. showIDs is the resolver's original-key
// map; showList supplies the resolved tour names the overrides depend on.
func (l *Linker) Link(rows []model.SetlistRow, showIDs map[shows.OriginalKey]int, showList []model.Show) ([]model.SetlistEntry, *Stats) {
	stats := &Stats{}
	var entries []model.SetlistEntry
	seen := make(map[entryKey]bool)

	tourByShow := make(map[int]string, len(showList))
	for _, s := range showList {
		tourByShow[s.ShowID] = s.Tour
	}

	var bar *progressbar.ProgressBar
	if l.cfg.ShowProgress {
		bar = progressbar.Default(int64(len(rows)), "linking")
	}

	for _, row := range rows {
		if bar != nil {
			_ = bar.Add(1)
		}

		rawDate := strings.TrimSpace(row.Date)
		rawVenue := strings.TrimSpace(row.Venue)
		showID, haveShow := showIDs[shows.OriginalKey{Date: rawDate, Venue: rawVenue}]
		songTitle := strings.TrimSpace(row.Song)

		if !haveShow {
			stats.SkippedNoShow++
			l.cfg.Logger.LogSkip(rawDate, rawVenue, songTitle, "no show for date/venue")
			continue
		}
		if songTitle == "" {
			stats.SkippedNoTitle++
			l.cfg.Logger.LogSkip(rawDate, rawVenue, "", "empty song title")
			continue
		}

		tokens := l.cfg.Title.Tokenize(songTitle)
		if len(tokens) == 0 {
			stats.SkippedNoTitle++
			l.cfg.Logger.LogSkip(rawDate, rawVenue, songTitle, "title tokenizes to nothing")
			continue
		}

		songID, method := l.resolveSong(tokens, tourByShow[showID])
		switch method {
		case MethodContextualStandard:
			stats.ContextualStandard++
		case MethodContextualOverride:
			stats.ContextualOverride++
		case MethodSequenceSuccess:
			stats.SequenceSuccess++
		case MethodSequenceFail:
			stats.SequenceFail++
			l.cfg.Logger.LogSkip(rawDate, rawVenue, songTitle, "no catalog match")
			continue
		}
		l.cfg.Logger.LogMatch(songTitle, showID, songID, method)

		position := parsePosition(row.Position)
		key := entryKey{show: showID, song: songID, position: position}
		if seen[key] {
			stats.DuplicatesSkipped++
			continue
		}
		seen[key] = true

		entries = append(entries, model.SetlistEntry{
			EntryID:  len(entries) + 1,
			ShowID:   showID,
			SongID:   songID,
			Position: position,
			Notes:    strings.TrimSpace(row.Notes),
		})
	}

	if bar != nil {
		_ = bar.Finish()
	}
	stats.Entries = len(entries)
	return entries, stats
}

type entryKey struct {
	show     int
	song     int
	position int
}

// resolveSong picks the song id for the row's tokens. The contextual check
// runs before generic matching: an exact hit on a monitored sequence routes
// by tour name and never reaches the matcher.
func (l *Linker) resolveSong(tokens []string, tour string) (int, string) {
	if o, monitored := l.overrides[title.Key(tokens)]; monitored {
		if o.alternateID != 0 && o.tours[strings.ToLower(tour)] {
			return o.alternateID, MethodContextualOverride
		}
		return o.standardID, MethodContextualStandard
	}
	if id, ok := l.matcher.Match(tokens); ok {
		return id, MethodSequenceSuccess
	}
	return 0, MethodSequenceFail
}

// parsePosition reads a position field as a non-negative integer. The raw
// feed sometimes carries floats ("3.0"); anything unparseable or negative
// becomes 0, the documented "no songs documented" position.
func parsePosition(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f < 0 {
		return 0
	}
	return int(f)
}
