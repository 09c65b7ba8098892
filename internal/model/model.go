package model

import "strings"

// SessionRecord is one row of the sessions/outtakes input file: a song as it
// appears in the studio discography, tied to the session (album) it was
// recorded for.
type SessionRecord struct {
	Session string `csv:"session"`
	Type    string `csv:"type"` // "Album" or "Outtake"
	Song    string `csv:"song"`
}

// IsOuttake reports whether the record is marked as an outtake.
// The input data is hand-typed, so the check is case-insensitive.
func (r SessionRecord) IsOuttake() bool {
	return strings.EqualFold(strings.TrimSpace(r.Type), "outtake")
}

// SetlistRow is one raw performance row as produced by the setlist fetcher:
// one song at one position of one show, with the show fields repeated on
// every row.
type SetlistRow struct {
	Date        string `csv:"date"` // MM/DD/YYYY
	Venue       string `csv:"venue"`
	Tour        string `csv:"tour"`
	City        string `csv:"city"`
	StateCode   string `csv:"statecode"`
	StateName   string `csv:"statename"`
	CountryCode string `csv:"countrycode"`
	CountryName string `csv:"countryname"`
	ShowNotes   string `csv:"shownotes"`
	Song        string `csv:"song"`
	Position    string `csv:"position"`
	Notes       string `csv:"notes"`
}

// Song is one catalog entry of the normalized songs relation.
type Song struct {
	SongID    int    `csv:"song_id"`
	Title     string `csv:"title"`
	Album     string `csv:"album"`
	IsOuttake bool   `csv:"is_outtake"`
}

// Show is one deduplicated show of the normalized shows relation.
// Date is ISO-8601 or empty when the raw date could not be parsed.
type Show struct {
	ShowID      int    `csv:"show_id"`
	Date        string `csv:"date"`
	Tour        string `csv:"tour"`
	Venue       string `csv:"venue"`
	City        string `csv:"city"`
	StateName   string `csv:"state_name"`
	StateCode   string `csv:"state_code"`
	CountryName string `csv:"country_name"`
	CountryCode string `csv:"country_code"`
	ShowNotes   string `csv:"show_notes"`
}

// SetlistEntry links one song to one show at one position.
type SetlistEntry struct {
	EntryID  int    `csv:"setlist_entry_id"`
	ShowID   int    `csv:"show_id"`
	SongID   int    `csv:"song_id"`
	Position int    `csv:"position"`
	Notes    string `csv:"notes"`
}
