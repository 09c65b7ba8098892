package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/setforge/internal/csvio"
	"github.com/franz/setforge/internal/setlistfm"
	"github.com/franz/setforge/internal/util"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the artist's setlist history from setlist.fm",
	Long: `Fetch every documented setlist for the configured artist from the
setlist.fm API and write the raw rows to Setlists.csv in the data directory.

The API key can be given via --api-key, the SETFORGE_API_KEY environment
variable, or an api-key-file containing just the key.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().String("artist-mbid", "", "MusicBrainz ID of the artist to fetch")
	fetchCmd.Flags().String("api-key", "", "setlist.fm API key")
	fetchCmd.Flags().String("api-key-file", "", "file containing the setlist.fm API key")

	viper.BindPFlag("artist-mbid", fetchCmd.Flags().Lookup("artist-mbid"))
	viper.BindPFlag("api-key", fetchCmd.Flags().Lookup("api-key"))
	viper.BindPFlag("api-key-file", fetchCmd.Flags().Lookup("api-key-file"))
}

func runFetch(cmd *cobra.Command, args []string) error {
	setupLogging()
	ctx := context.Background()

	mbid := viper.GetString("artist-mbid")
	if mbid == "" {
		return fmt.Errorf("artist MBID is required (use --artist-mbid or set artist-mbid in config)")
	}

	apiKey, err := resolveAPIKey()
	if err != nil {
		return err
	}

	client, err := setlistfm.NewClient(apiKey, setlistfm.WithProgress())
	if err != nil {
		return err
	}

	util.InfoLog("Fetching setlists for artist %s", mbid)
	rows, err := client.FetchAll(ctx, mbid)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	dataDir := viper.GetString("data-dir")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	out := filepath.Join(dataDir, "Setlists.csv")
	if err := csvio.WriteSetlistRows(out, rows); err != nil {
		return err
	}

	util.SuccessLog("Wrote %d rows to %s", len(rows), out)
	return nil
}

func resolveAPIKey() (string, error) {
	if key := viper.GetString("api-key"); key != "" {
		return key, nil
	}
	if path := viper.GetString("api-key-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading API key file: %w", err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("API key file %s is empty", path)
		}
		return key, nil
	}
	return "", fmt.Errorf("setlist.fm API key is required (use --api-key, SETFORGE_API_KEY, or --api-key-file)")
}
