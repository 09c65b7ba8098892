package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/setforge/internal/csvio"
	"github.com/franz/setforge/internal/pipeline"
	"github.com/franz/setforge/internal/report"
	"github.com/franz/setforge/internal/util"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize raw session and setlist data into the three relations",
	Long: `Normalize reads Sessions.csv and Setlists.csv from the data directory,
builds the deduplicated song catalog, resolves unique shows, links every
setlist row to a show and a song, and writes songs.csv, shows.csv, and
setlists.csv.

The run is deterministic: identical inputs produce identical output files,
including every assigned id. Nothing is written if an input file is missing
or the catalog invariant fails.`,
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().String("sessions", "", "sessions input file (default <data-dir>/Sessions.csv)")
	normalizeCmd.Flags().String("setlists", "", "setlists input file (default <data-dir>/Setlists.csv)")
	normalizeCmd.Flags().String("events-dir", "", "directory for the JSONL event log (disabled when empty)")

	viper.BindPFlag("sessions", normalizeCmd.Flags().Lookup("sessions"))
	viper.BindPFlag("setlists", normalizeCmd.Flags().Lookup("setlists"))
	viper.BindPFlag("events-dir", normalizeCmd.Flags().Lookup("events-dir"))
}

func runNormalize(cmd *cobra.Command, args []string) error {
	setupLogging()

	dataDir := viper.GetString("data-dir")
	sessionsPath := viper.GetString("sessions")
	if sessionsPath == "" {
		sessionsPath = filepath.Join(dataDir, "Sessions.csv")
	}
	setlistsPath := viper.GetString("setlists")
	if setlistsPath == "" {
		setlistsPath = filepath.Join(dataDir, "Setlists.csv")
	}

	// A missing input aborts the whole batch before anything is written;
	// a silently truncated catalog is worse than no catalog.
	for _, path := range []string{sessionsPath, setlistsPath} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("required input file missing: %s", path)
		}
	}

	sessions, err := csvio.ReadSessions(sessionsPath)
	if err != nil {
		return err
	}
	rows, err := csvio.ReadSetlists(setlistsPath)
	if err != nil {
		return err
	}
	util.InfoLog("Loaded %d session records and %d raw setlist rows", len(sessions), len(rows))

	cfg := pipeline.DefaultConfig()
	cfg.ShowProgress = !viper.GetBool("quiet")

	if eventsDir := viper.GetString("events-dir"); eventsDir != "" {
		logger, err := report.NewEventLogger(eventsDir, report.LevelInfo)
		if err != nil {
			return err
		}
		defer logger.Close()
		cfg.Logger = logger
		util.InfoLog("Event log: %s", logger.Path())
	}

	out, _, err := pipeline.Run(cfg, sessions, rows)
	if err != nil {
		return err
	}

	if err := csvio.WriteSongs(filepath.Join(dataDir, "songs.csv"), out.Songs); err != nil {
		return err
	}
	if err := csvio.WriteShows(filepath.Join(dataDir, "shows.csv"), out.Shows); err != nil {
		return err
	}
	if err := csvio.WriteEntries(filepath.Join(dataDir, "setlists.csv"), out.Entries); err != nil {
		return err
	}

	util.SuccessLog("Normalized: %d songs, %d shows, %d setlist entries",
		len(out.Songs), len(out.Shows), len(out.Entries))
	return nil
}
