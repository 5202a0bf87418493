package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// UpsertSentence inserts or replaces a sentence row. Re-running a load
// with the same data converges on the same rows.
func UpsertSentence(db DBExecutor, s SentenceRow) error {
	if strings.TrimSpace(s.Text) == "" {
		return fmt.Errorf("sentence text must be non-empty")
	}
	_, err := db.Exec(`INSERT INTO sentences (id, lang, text, username, date_added, date_modified, group_id, meaning_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  lang = excluded.lang,
		  text = excluded.text,
		  username = excluded.username,
		  date_added = excluded.date_added,
		  date_modified = excluded.date_modified,
		  group_id = excluded.group_id,
		  meaning_id = excluded.meaning_id`,
		s.ID, s.Lang, s.Text,
		nullableString(s.Username), nullableTime(s), nullableTimeMod(s),
		nullableID(s.GroupID), nullableID(s.MeaningID))
	if err != nil {
		return fmt.Errorf("upsert sentence %d: %w", s.ID, err)
	}
	return nil
}

// ReplaceWords replaces the word annotations of a sentence with the
// given rows. Positions are taken from slice order.
func ReplaceWords(db DBExecutor, sentenceID int64, words []WordRow) error {
	if _, err := db.Exec(`DELETE FROM words WHERE sentence_id = ?`, sentenceID); err != nil {
		return fmt.Errorf("clear words for sentence %d: %w", sentenceID, err)
	}
	for i, w := range words {
		_, err := db.Exec(`INSERT INTO words (sentence_id, position, headword, reading, sense, display, example)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sentenceID, i, w.Headword,
			nullableString(w.Reading), nullableInt(w.Sense), nullableString(w.Display),
			boolToInt(w.Example))
		if err != nil {
			return fmt.Errorf("insert word %d of sentence %d: %w", i, sentenceID, err)
		}
	}
	return nil
}

// GetSentence returns a persisted sentence by id.
func GetSentence(db DBExecutor, id int64) (SentenceRow, error) {
	var s SentenceRow
	var username sql.NullString
	var added, modified sql.NullTime
	var groupID, meaningID sql.NullInt64

	err := db.QueryRow(`SELECT id, lang, text, username, date_added, date_modified, group_id, meaning_id
		FROM sentences WHERE id = ?`, id).
		Scan(&s.ID, &s.Lang, &s.Text, &username, &added, &modified, &groupID, &meaningID)
	if err != nil {
		return SentenceRow{}, err
	}
	if username.Valid {
		s.Username = username.String
	}
	if added.Valid {
		s.DateAdded = added.Time
	}
	if modified.Valid {
		s.DateModified = modified.Time
	}
	s.GroupID, s.MeaningID = -1, -1
	if groupID.Valid {
		s.GroupID = groupID.Int64
	}
	if meaningID.Valid {
		s.MeaningID = meaningID.Int64
	}
	return s, nil
}

// GetWords returns the word annotations of a sentence in position order.
func GetWords(db DBExecutor, sentenceID int64) ([]WordRow, error) {
	rows, err := db.Query(`SELECT id, sentence_id, position, headword, reading, sense, display, example
		FROM words WHERE sentence_id = ? ORDER BY position`, sentenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WordRow
	for rows.Next() {
		var w WordRow
		var reading, display sql.NullString
		var sense sql.NullInt64
		var example int
		if err := rows.Scan(&w.ID, &w.SentenceID, &w.Position, &w.Headword, &reading, &sense, &display, &example); err != nil {
			return nil, err
		}
		if reading.Valid {
			w.Reading = reading.String
		}
		if sense.Valid {
			w.Sense = int(sense.Int64)
		}
		if display.Valid {
			w.Display = display.String
		}
		w.Example = example != 0
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetGroupMembers returns the ids of all sentences assigned to the
// given translation group, ascending.
func GetGroupMembers(db DBExecutor, groupID int64) ([]int64, error) {
	rows, err := db.Query(`SELECT id FROM sentences WHERE group_id = ? ORDER BY id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetLoadProgress returns the checkpoint of a named load, or -1 when
// the load has never run.
func GetLoadProgress(db DBExecutor, name string) (int, error) {
	var index int
	err := db.QueryRow(`SELECT last_processed FROM load_state WHERE name = ?`, name).Scan(&index)
	if err == sql.ErrNoRows {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return index, nil
}

// UpdateLoadProgress records the checkpoint of a named load.
func UpdateLoadProgress(db DBExecutor, name string, index int) error {
	_, err := db.Exec(`INSERT INTO load_state (name, last_processed) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET last_processed = excluded.last_processed`,
		name, index)
	return err
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(v int) interface{} {
	if v == 0 {
		return nil
	}
	return v
}

func nullableID(v int64) interface{} {
	if v < 0 {
		return nil
	}
	return v
}

func nullableTime(s SentenceRow) interface{} {
	if s.DateAdded.IsZero() {
		return nil
	}
	return s.DateAdded
}

func nullableTimeMod(s SentenceRow) interface{} {
	if s.DateModified.IsZero() {
		return nil
	}
	return s.DateModified
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
