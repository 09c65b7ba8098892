// Package csvio reads and writes the pipeline's record shapes as CSV files.
// Input files come from different tooling generations, so headers are
// normalized (lower-cased, spaces to underscores) and a few legacy column
// names are aliased before decoding.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/franz/setforge/internal/model"
)

// headerAliases maps legacy input column names to the canonical ones.
var headerAliases = map[string]string{
	"song_title":       "song",
	"album_or_outtake": "type",
	"show_notes":       "shownotes",
	"state_code":       "statecode",
	"state_name":       "statename",
	"country_code":     "countrycode",
	"country_name":     "countryname",
}

// ReadSessions loads the sessions/outtakes input file. The file is
// hand-maintained and typically Latin-1 encoded.
func ReadSessions(path string) ([]model.SessionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sessions file: %w", err)
	}
	defer f.Close()

	var records []model.SessionRecord
	if err := decode(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()), headerAliases, &records); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// ReadSetlists loads the raw setlist rows produced by the fetcher. The file
// is UTF-8 with an optional BOM.
func ReadSetlists(path string) ([]model.SetlistRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening setlists file: %w", err)
	}
	defer f.Close()

	var rows []model.SetlistRow
	if err := decode(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()), headerAliases, &rows); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

// ReadSongs loads a normalized songs.csv.
func ReadSongs(path string) ([]model.Song, error) {
	var songs []model.Song
	if err := readNormalized(path, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// ReadShows loads a normalized shows.csv.
func ReadShows(path string) ([]model.Show, error) {
	var shows []model.Show
	if err := readNormalized(path, &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

// ReadEntries loads a normalized setlists.csv.
func ReadEntries(path string) ([]model.SetlistEntry, error) {
	var entries []model.SetlistEntry
	if err := readNormalized(path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func readNormalized(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	// No legacy aliases here: normalized files are produced by this
	// program and already carry canonical headers.
	if err := decode(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()), nil, out); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// WriteSetlistRows writes raw rows fetched from the API.
func WriteSetlistRows(path string, rows []model.SetlistRow) error {
	return write(path, rows)
}

// WriteSongs writes the normalized songs relation.
func WriteSongs(path string, songs []model.Song) error {
	return write(path, songs)
}

// WriteShows writes the normalized shows relation.
func WriteShows(path string, shows []model.Show) error {
	return write(path, shows)
}

// WriteEntries writes the normalized setlists relation.
func WriteEntries(path string, entries []model.SetlistEntry) error {
	return write(path, entries)
}

func write(path string, records interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := gocsv.Marshal(records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// decode normalizes the header row, applies the given aliases, and
// unmarshals the rest of the file into out.
func decode(r io.Reader, aliases map[string]string, out interface{}) error {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	all, err := cr.ReadAll()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return nil
	}

	header := all[0]
	for i, col := range header {
		name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(col)), " ", "_")
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		header[i] = name
	}

	// Short rows would make the csv writer below fail; pad them out.
	for i, rec := range all {
		if len(rec) < len(header) {
			padded := make([]string, len(header))
			copy(padded, rec)
			all[i] = padded
		} else if len(rec) > len(header) {
			all[i] = rec[:len(header)]
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(all); err != nil {
		return err
	}
	w.Flush()

	return gocsv.UnmarshalBytes(buf.Bytes(), out)
}
