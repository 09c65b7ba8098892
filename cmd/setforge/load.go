package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/setforge/internal/csvio"
	"github.com/franz/setforge/internal/report"
	"github.com/franz/setforge/internal/store"
	"github.com/franz/setforge/internal/util"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the normalized CSV files into the SQLite database",
	Long: `Load reads songs.csv, shows.csv, and setlists.csv from the data
directory, replaces the contents of the database tables in one transaction,
and recomputes the derived statistics (song play counts, rarity levels,
show song counts).`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	setupLogging()

	dataDir := viper.GetString("data-dir")
	songsPath := filepath.Join(dataDir, "songs.csv")
	showsPath := filepath.Join(dataDir, "shows.csv")
	entriesPath := filepath.Join(dataDir, "setlists.csv")

	for _, path := range []string{songsPath, showsPath, entriesPath} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("required input file missing: %s (run normalize first)", path)
		}
	}

	songs, err := csvio.ReadSongs(songsPath)
	if err != nil {
		return err
	}
	shows, err := csvio.ReadShows(showsPath)
	if err != nil {
		return err
	}
	entries, err := csvio.ReadEntries(entriesPath)
	if err != nil {
		return err
	}
	util.InfoLog("Loaded %d songs, %d shows, %d setlist entries from CSV",
		len(songs), len(shows), len(entries))

	var logger *report.EventLogger
	if eventsDir := viper.GetString("events-dir"); eventsDir != "" {
		logger, err = report.NewEventLogger(eventsDir, report.LevelInfo)
		if err != nil {
			return err
		}
		defer logger.Close()
	}

	dbPath := viper.GetString("db")
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	util.InfoLog("Importing into %s (existing rows are replaced)", dbPath)
	if err := db.ImportAll(songs, shows, entries); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	logger.LogLoad("songs", len(songs))
	logger.LogLoad("shows", len(shows))
	logger.LogLoad("setlists", len(entries))

	util.InfoLog("Updating statistics...")
	if err := db.UpdateStatistics(); err != nil {
		return fmt.Errorf("statistics update failed: %w", err)
	}

	nSongs, nShows, nEntries, err := db.Counts()
	if err != nil {
		return err
	}
	util.SuccessLog("Database ready: %d songs, %d shows, %d setlist entries", nSongs, nShows, nEntries)
	return nil
}
