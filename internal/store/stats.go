package store

import (
	"database/sql"
	"fmt"
)

// Rarity buckets, assigned from play counts. The thresholds mirror how the
// query layer talks about songs ("rarities" are the draw of a show).
const (
	RarityNeverPlayed = "never played"
	RarityVeryRare    = "very rare"
	RarityRare        = "rare"
	RarityUncommon    = "uncommon"
	RarityCommon      = "common"
)

// UpdateStatistics recomputes the derived columns after an import: per-song
// play counts and rarity levels, and per-show song counts. Runs in one
// transaction so readers never see half-updated statistics.
func (s *Store) UpdateStatistics() error {
	return s.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			UPDATE songs SET play_count = (
				SELECT COUNT(*) FROM setlists
				WHERE setlists.song_id = songs.song_id
			)`); err != nil {
			return fmt.Errorf("updating play counts: %w", err)
		}

		if _, err := tx.Exec(`
			UPDATE songs SET rarity_level = CASE
				WHEN play_count = 0 THEN ?
				WHEN play_count <= 5 THEN ?
				WHEN play_count <= 20 THEN ?
				WHEN play_count <= 100 THEN ?
				ELSE ?
			END`,
			RarityNeverPlayed, RarityVeryRare, RarityRare, RarityUncommon, RarityCommon,
		); err != nil {
			return fmt.Errorf("updating rarity levels: %w", err)
		}

		if _, err := tx.Exec(`
			UPDATE shows SET song_count = (
				SELECT COUNT(*) FROM setlists
				WHERE setlists.show_id = shows.show_id AND setlists.position > 0
			)`); err != nil {
			return fmt.Errorf("updating show song counts: %w", err)
		}

		return nil
	})
}
