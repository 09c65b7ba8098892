package store

import (
	"database/sql"
	"fmt"

	"github.com/franz/setforge/internal/model"
)

// ImportAll clears the three relations and bulk-inserts the normalized rows
// inside a single transaction, so a failed import leaves the previous data
// untouched. Statistics are not updated here; call UpdateStatistics after.
func (s *Store) ImportAll(songs []model.Song, shows []model.Show, entries []model.SetlistEntry) error {
	return s.Transaction(func(tx *sql.Tx) error {
		// Children first so the foreign keys never dangle mid-clear.
		for _, table := range []string{"setlists", "shows", "songs"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}

		songStmt, err := tx.Prepare(`
			INSERT INTO songs (song_id, title, album, is_outtake)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer songStmt.Close()
		for _, song := range songs {
			if _, err := songStmt.Exec(song.SongID, song.Title, song.Album, song.IsOuttake); err != nil {
				return fmt.Errorf("inserting song %d: %w", song.SongID, err)
			}
		}

		showStmt, err := tx.Prepare(`
			INSERT INTO shows (show_id, date, tour, venue, city,
				state_name, state_code, country_name, country_code, show_notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer showStmt.Close()
		for _, show := range shows {
			if _, err := showStmt.Exec(show.ShowID, nullIfEmpty(show.Date), show.Tour,
				show.Venue, show.City,
				nullIfEmpty(show.StateName), nullIfEmpty(show.StateCode),
				nullIfEmpty(show.CountryName), nullIfEmpty(show.CountryCode),
				nullIfEmpty(show.ShowNotes)); err != nil {
				return fmt.Errorf("inserting show %d: %w", show.ShowID, err)
			}
		}

		entryStmt, err := tx.Prepare(`
			INSERT INTO setlists (setlist_entry_id, show_id, song_id, position, notes)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer entryStmt.Close()
		for _, e := range entries {
			if _, err := entryStmt.Exec(e.EntryID, e.ShowID, e.SongID, e.Position, e.Notes); err != nil {
				return fmt.Errorf("inserting setlist entry %d: %w", e.EntryID, err)
			}
		}

		return nil
	})
}

// Counts returns the row counts of the three relations.
func (s *Store) Counts() (songs, shows, entries int, err error) {
	if err = s.db.QueryRow("SELECT COUNT(*) FROM songs").Scan(&songs); err != nil {
		return
	}
	if err = s.db.QueryRow("SELECT COUNT(*) FROM shows").Scan(&shows); err != nil {
		return
	}
	err = s.db.QueryRow("SELECT COUNT(*) FROM setlists").Scan(&entries)
	return
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
