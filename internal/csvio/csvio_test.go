package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/franz/setforge/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReadSessions(t *testing.T) {
	path := writeFile(t, "sessions.csv",
		"Session,Type,Song\n"+
			"Born To Run,Album,Thunder Road\n"+
			"Born To Run,Outtake,Linda Let Me Be The One\n")

	records, err := ReadSessions(path)
	if err != nil {
		t.Fatalf("ReadSessions failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Song != "Thunder Road" || records[0].IsOuttake() {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if !records[1].IsOuttake() {
		t.Errorf("expected second record to be an outtake: %+v", records[1])
	}
}

func TestReadSessionsLatin1(t *testing.T) {
	// "Café" with a Latin-1 é (0xE9), as the hand-maintained file has it.
	path := writeFile(t, "sessions.csv",
		"Session,Type,Song\nDemos,Album,Caf\xe9 Song\n")

	records, err := ReadSessions(path)
	if err != nil {
		t.Fatalf("ReadSessions failed: %v", err)
	}
	if records[0].Song != "Café Song" {
		t.Errorf("Expected %q, got %q", "Café Song", records[0].Song)
	}
}

func TestReadSessionsLegacyHeaders(t *testing.T) {
	path := writeFile(t, "sessions.csv",
		"Session,Album_or_Outtake,Song_Title\nNebraska,Outtake,Losin' Kind\n")

	records, err := ReadSessions(path)
	if err != nil {
		t.Fatalf("ReadSessions failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Song != "Losin' Kind" || !records[0].IsOuttake() {
		t.Errorf("legacy headers not aliased: %+v", records[0])
	}
}

func TestReadSetlistsBOMAndShortRows(t *testing.T) {
	path := writeFile(t, "setlists.csv",
		"\xef\xbb\xbfDate,Venue,Tour,City,Song,Position,Notes\n"+
			"08/15/1975,The Bottom Line,Born To Run Tour,New York,Thunder Road,1,\n"+
			"08/15/1975,The Bottom Line,Born To Run Tour,New York,Jungleland\n") // short row

	rows, err := ReadSetlists(path)
	if err != nil {
		t.Fatalf("ReadSetlists failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Date != "08/15/1975" {
		t.Errorf("BOM not stripped from first header: %+v", rows[0])
	}
	if rows[1].Song != "Jungleland" || rows[1].Position != "" {
		t.Errorf("short row not padded: %+v", rows[1])
	}
}

func TestReadSetlistsSpacedHeaders(t *testing.T) {
	path := writeFile(t, "setlists.csv",
		"Date,Venue,State Code,State Name,Show Notes,Song,Position\n"+
			"08/15/1975,The Bottom Line,NY,New York,late show,Thunder Road,1\n")

	rows, err := ReadSetlists(path)
	if err != nil {
		t.Fatalf("ReadSetlists failed: %v", err)
	}
	if rows[0].StateCode != "NY" || rows[0].StateName != "New York" || rows[0].ShowNotes != "late show" {
		t.Errorf("spaced headers not normalized: %+v", rows[0])
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	songs := []model.Song{
		{SongID: 1, Title: "Thunder Road", Album: "Born To Run"},
		{SongID: 2, Title: `She's The One, "Live"`, Album: "Born To Run"},
	}
	shows := []model.Show{
		{ShowID: 1, Date: "1975-08-15", Tour: "Born To Run Tour", Venue: "The Bottom Line", City: "New York"},
	}
	entries := []model.SetlistEntry{
		{EntryID: 1, ShowID: 1, SongID: 2, Position: 1, Notes: "opener"},
	}

	songsPath := filepath.Join(dir, "songs.csv")
	showsPath := filepath.Join(dir, "shows.csv")
	entriesPath := filepath.Join(dir, "setlists.csv")

	if err := WriteSongs(songsPath, songs); err != nil {
		t.Fatalf("WriteSongs failed: %v", err)
	}
	if err := WriteShows(showsPath, shows); err != nil {
		t.Fatalf("WriteShows failed: %v", err)
	}
	if err := WriteEntries(entriesPath, entries); err != nil {
		t.Fatalf("WriteEntries failed: %v", err)
	}

	gotSongs, err := ReadSongs(songsPath)
	if err != nil {
		t.Fatalf("ReadSongs failed: %v", err)
	}
	if len(gotSongs) != 2 || gotSongs[1].Title != songs[1].Title {
		t.Errorf("songs round trip mismatch: %+v", gotSongs)
	}

	gotShows, err := ReadShows(showsPath)
	if err != nil {
		t.Fatalf("ReadShows failed: %v", err)
	}
	if len(gotShows) != 1 || gotShows[0] != shows[0] {
		t.Errorf("shows round trip mismatch: %+v", gotShows)
	}

	gotEntries, err := ReadEntries(entriesPath)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(gotEntries) != 1 || gotEntries[0] != entries[0] {
		t.Errorf("entries round trip mismatch: %+v", gotEntries)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := ReadSessions(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing sessions file")
	}
	if _, err := ReadSetlists(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing setlists file")
	}
}
