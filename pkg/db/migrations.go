package db

// migrationsSQL holds the schema. Statements are split on ';' by
// InitDB, so no statement body may contain a semicolon.
const migrationsSQL = `
CREATE TABLE IF NOT EXISTS sentences (
	id INTEGER PRIMARY KEY,
	lang TEXT NOT NULL,
	text TEXT NOT NULL,
	username TEXT,
	date_added TIMESTAMP,
	date_modified TIMESTAMP,
	group_id INTEGER,
	meaning_id INTEGER
);

CREATE INDEX IF NOT EXISTS idx_sentences_lang ON sentences(lang);

CREATE INDEX IF NOT EXISTS idx_sentences_group ON sentences(group_id);

CREATE TABLE IF NOT EXISTS words (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sentence_id INTEGER NOT NULL REFERENCES sentences(id),
	position INTEGER NOT NULL,
	headword TEXT NOT NULL,
	reading TEXT,
	sense INTEGER,
	display TEXT,
	example INTEGER NOT NULL DEFAULT 0,
	UNIQUE(sentence_id, position)
);

CREATE INDEX IF NOT EXISTS idx_words_headword ON words(headword);

CREATE TABLE IF NOT EXISTS load_state (
	name TEXT PRIMARY KEY,
	last_processed INTEGER NOT NULL DEFAULT -1
)
`
