// Package shows deduplicates raw performance rows into unique shows. Every
// input row repeats the show fields, so the same show arrives once per song
// played; identity is the (normalized date, venue) pair.
package shows

import (
	"strings"
	"time"

	"github.com/franz/setforge/internal/model"
)

const (
	inputDateLayout = "01/02/2006" // MM/DD/YYYY as fetched
	isoDateLayout   = "2006-01-02"

	// UnknownTour is used when a row has neither a tour name nor a
	// parseable date to take the year from.
	UnknownTour = "Unknown Tour"
	// UnknownCity fills rows with no city field.
	UnknownCity = "Unknown City"
)

// OriginalKey is the raw (pre-normalization) date and venue of an input row.
// The resolver returns a map of these so later passes can re-link rows that
// differ from the minted show only in whitespace or casing.
type OriginalKey struct {
	Date  string
	Venue string
}

// Result carries resolution statistics for logging.
type Result struct {
	Shows             int
	DuplicatesSkipped int
	ToursFilledByYear int
	RowsWithoutKey    int
}

// identityKey is the dedup key: ISO date (empty when unparseable) plus the
// lower-cased venue, so casing differences collapse to one show.
type identityKey struct {
	date  string
	venue string
}

// Resolve walks the raw rows in input order, mints a Show with a fresh dense
// id at the first occurrence of each identity key, and maps every row's
// original (date, venue) strings to the show id that owns them. Rows missing
// either raw field mint nothing and are counted.
func Resolve(rows []model.SetlistRow) ([]model.Show, map[OriginalKey]int, *Result) {
	res := &Result{}
	var out []model.Show
	byIdentity := make(map[identityKey]int)
	byOriginal := make(map[OriginalKey]int)

	for _, row := range rows {
		rawDate := strings.TrimSpace(row.Date)
		rawVenue := strings.TrimSpace(row.Venue)
		if rawDate == "" || rawVenue == "" {
			res.RowsWithoutKey++
			continue
		}

		isoDate, year := normalizeDate(rawDate)
		key := identityKey{date: isoDate, venue: strings.ToLower(rawVenue)}
		orig := OriginalKey{Date: rawDate, Venue: rawVenue}

		if id, seen := byIdentity[key]; seen {
			res.DuplicatesSkipped++
			// A duplicate listing can still spell date or venue
			// differently; remember its spelling so its setlist
			// rows link to the already-minted show.
			if _, ok := byOriginal[orig]; !ok {
				byOriginal[orig] = id
			}
			continue
		}

		id := len(out) + 1
		byIdentity[key] = id
		if _, ok := byOriginal[orig]; !ok {
			byOriginal[orig] = id
		}

		tour := strings.TrimSpace(row.Tour)
		if tour == "" {
			if year != "" {
				tour = year
				res.ToursFilledByYear++
			} else {
				tour = UnknownTour
			}
		}

		city := strings.TrimSpace(row.City)
		if city == "" {
			city = UnknownCity
		}

		out = append(out, model.Show{
			ShowID:      id,
			Date:        isoDate,
			Tour:        tour,
			Venue:       rawVenue,
			City:        city,
			StateName:   strings.TrimSpace(row.StateName),
			StateCode:   strings.TrimSpace(row.StateCode),
			CountryName: strings.TrimSpace(row.CountryName),
			CountryCode: strings.TrimSpace(row.CountryCode),
			ShowNotes:   strings.TrimSpace(row.ShowNotes),
		})
	}

	res.Shows = len(out)
	return out, byOriginal, res
}

// normalizeDate parses MM/DD/YYYY into ISO form plus the 4-digit year.
// Unparseable dates come back empty — never defaulted to today, since a
// wrong date would merge distinct shows.
func normalizeDate(raw string) (iso, year string) {
	t, err := time.Parse(inputDateLayout, raw)
	if err != nil {
		return "", ""
	}
	return t.Format(isoDateLayout), t.Format("2006")
}
