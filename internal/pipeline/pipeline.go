// Package pipeline runs the normalization phases in their required order:
// catalog build, then show resolution, then setlist linking. Each phase
// completes before the next starts and the built structures are read-only
// afterwards, so a rerun over the same inputs reproduces every id.
package pipeline

import (
	"fmt"

	"github.com/franz/setforge/internal/catalog"
	"github.com/franz/setforge/internal/linker"
	"github.com/franz/setforge/internal/model"
	"github.com/franz/setforge/internal/report"
	"github.com/franz/setforge/internal/shows"
	"github.com/franz/setforge/internal/title"
	"github.com/franz/setforge/internal/util"
)

// Config holds pipeline configuration.
type Config struct {
	Title        title.Config
	Overrides    []linker.Override
	Logger       *report.EventLogger // optional
	ShowProgress bool
}

// DefaultConfig returns the production tables.
func DefaultConfig() Config {
	return Config{
		Title:     title.DefaultConfig(),
		Overrides: linker.DefaultOverrides(),
	}
}

// Output is the complete, internally consistent result of a run. Either all
// three relations are produced or Run returns an error and nothing else.
type Output struct {
	Songs   []model.Song
	Shows   []model.Show
	Entries []model.SetlistEntry
}

// Stats aggregates the per-phase statistics.
type Stats struct {
	Catalog *catalog.Result
	Shows   *shows.Result
	Link    *linker.Stats
}

// Run executes the full batch transformation over in-memory inputs.
func Run(cfg Config, sessions []model.SessionRecord, rows []model.SetlistRow) (*Output, *Stats, error) {
	util.InfoLog("Building song catalog from %d session records and %d setlist rows", len(sessions), len(rows))

	titles := make([]string, 0, len(rows))
	for _, row := range rows {
		titles = append(titles, row.Song)
	}

	cat, catRes := catalog.Build(cfg.Title, sessions, titles)
	if err := cat.Validate(); err != nil {
		return nil, nil, fmt.Errorf("catalog invariant violated: %w", err)
	}
	util.InfoLog("Catalog: %d session songs, %d covers (%d duplicates, %d empty titles skipped)",
		catRes.SessionSongs, catRes.CoverSongs, catRes.DuplicatesSkipped, catRes.EmptySkipped)

	showList, showIDs, showRes := shows.Resolve(rows)
	util.InfoLog("Shows: %d unique (%d duplicate listings, %d tours filled from year)",
		showRes.Shows, showRes.DuplicatesSkipped, showRes.ToursFilledByYear)

	lk, err := linker.New(linker.Config{
		Title:        cfg.Title,
		Overrides:    cfg.Overrides,
		Logger:       cfg.Logger,
		ShowProgress: cfg.ShowProgress,
	}, cat)
	if err != nil {
		return nil, nil, fmt.Errorf("building linker: %w", err)
	}

	entries, linkStats := lk.Link(rows, showIDs, showList)
	logLinkStats(linkStats)

	return &Output{
			Songs:   cat.Songs(),
			Shows:   showList,
			Entries: entries,
		}, &Stats{
			Catalog: catRes,
			Shows:   showRes,
			Link:    linkStats,
		}, nil
}

func logLinkStats(s *linker.Stats) {
	util.InfoLog("--- Song matching statistics ---")
	util.InfoLog("  %s: %d", linker.MethodContextualStandard, s.ContextualStandard)
	util.InfoLog("  %s: %d", linker.MethodContextualOverride, s.ContextualOverride)
	util.InfoLog("  %s: %d", linker.MethodSequenceSuccess, s.SequenceSuccess)
	util.InfoLog("  %s: %d", linker.MethodSequenceFail, s.SequenceFail)
	util.InfoLog("  skipped (no show): %d", s.SkippedNoShow)
	util.InfoLog("  skipped (no title): %d", s.SkippedNoTitle)
	if s.DuplicatesSkipped > 0 {
		util.WarnLog("Skipped %d duplicate setlist entries (same show, song, position)", s.DuplicatesSkipped)
	}
	util.InfoLog("Generated %d setlist entries (%d matched)", s.Entries, s.Matched())
}
