package store

// schemaV1 creates the three normalized relations plus their derived
// statistics columns. play_count, rarity_level, and song_count start empty
// and are filled by UpdateStatistics after each import.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS songs (
	song_id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	album TEXT NOT NULL,
	is_outtake BOOLEAN NOT NULL DEFAULT 0,
	play_count INTEGER NOT NULL DEFAULT 0,
	rarity_level TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS shows (
	show_id INTEGER PRIMARY KEY,
	date TEXT,
	tour TEXT NOT NULL,
	venue TEXT NOT NULL,
	city TEXT NOT NULL,
	state_name TEXT,
	state_code TEXT,
	country_name TEXT,
	country_code TEXT,
	show_notes TEXT,
	song_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS setlists (
	setlist_entry_id INTEGER PRIMARY KEY,
	show_id INTEGER NOT NULL REFERENCES shows(show_id),
	song_id INTEGER NOT NULL REFERENCES songs(song_id),
	position INTEGER NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	UNIQUE(show_id, song_id, position)
);

CREATE INDEX IF NOT EXISTS idx_setlists_show ON setlists(show_id);
CREATE INDEX IF NOT EXISTS idx_setlists_song ON setlists(song_id);
CREATE INDEX IF NOT EXISTS idx_shows_date ON shows(date);
CREATE INDEX IF NOT EXISTS idx_shows_tour ON shows(tour);
CREATE INDEX IF NOT EXISTS idx_songs_album ON songs(album);
`
