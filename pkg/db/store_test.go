package db

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := InitDB(conn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	return conn
}

func TestInitDBCreatesSchema(t *testing.T) {
	conn := openTestDB(t)

	for _, table := range []string{"sentences", "words", "load_state"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestUpsertAndGetSentence(t *testing.T) {
	conn := openTestDB(t)

	added := time.Date(2010, 10, 12, 9, 3, 40, 0, time.UTC)
	s := SentenceRow{
		ID: 6381, Lang: "jpn", Text: "彼は英語を話します。",
		Username: "mookeee", DateAdded: added,
		GroupID: 0, MeaningID: 156245,
	}
	if err := UpsertSentence(conn, s); err != nil {
		t.Fatalf("UpsertSentence failed: %v", err)
	}

	got, err := GetSentence(conn, 6381)
	if err != nil {
		t.Fatalf("GetSentence failed: %v", err)
	}
	if got.Text != s.Text || got.Lang != "jpn" || got.Username != "mookeee" {
		t.Errorf("got %+v", got)
	}
	if !got.DateAdded.Equal(added) {
		t.Errorf("DateAdded = %v, want %v", got.DateAdded, added)
	}
	if !got.DateModified.IsZero() {
		t.Errorf("DateModified should be unset, got %v", got.DateModified)
	}
	if got.GroupID != 0 || got.MeaningID != 156245 {
		t.Errorf("ids: %+v", got)
	}

	// Upsert with new text converges on the new row.
	s.Text = "updated"
	if err := UpsertSentence(conn, s); err != nil {
		t.Fatalf("second UpsertSentence failed: %v", err)
	}
	got, err = GetSentence(conn, 6381)
	if err != nil {
		t.Fatalf("GetSentence failed: %v", err)
	}
	if got.Text != "updated" {
		t.Errorf("Text = %q after upsert", got.Text)
	}
}

func TestUpsertSentenceRejectsEmptyText(t *testing.T) {
	conn := openTestDB(t)
	if err := UpsertSentence(conn, SentenceRow{ID: 1, Lang: "jpn"}); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestReplaceWordsRoundTrip(t *testing.T) {
	conn := openTestDB(t)

	if err := UpsertSentence(conn, SentenceRow{ID: 1, Lang: "jpn", Text: "彼は", GroupID: -1, MeaningID: -1}); err != nil {
		t.Fatalf("UpsertSentence failed: %v", err)
	}

	words := []WordRow{
		{Headword: "彼", Reading: "かれ", Sense: 1},
		{Headword: "は", Example: true},
	}
	if err := ReplaceWords(conn, 1, words); err != nil {
		t.Fatalf("ReplaceWords failed: %v", err)
	}

	got, err := GetWords(conn, 1)
	if err != nil {
		t.Fatalf("GetWords failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d words, want 2", len(got))
	}
	if got[0].Headword != "彼" || got[0].Reading != "かれ" || got[0].Sense != 1 || got[0].Position != 0 {
		t.Errorf("first word: %+v", got[0])
	}
	if got[1].Headword != "は" || !got[1].Example || got[1].Position != 1 {
		t.Errorf("second word: %+v", got[1])
	}

	// Replacement drops the old annotation.
	if err := ReplaceWords(conn, 1, words[:1]); err != nil {
		t.Fatalf("second ReplaceWords failed: %v", err)
	}
	got, err = GetWords(conn, 1)
	if err != nil {
		t.Fatalf("GetWords failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d words after replace, want 1", len(got))
	}
}

func TestGetGroupMembers(t *testing.T) {
	conn := openTestDB(t)

	for _, s := range []SentenceRow{
		{ID: 3, Lang: "jpn", Text: "a", GroupID: 7, MeaningID: -1},
		{ID: 1, Lang: "eng", Text: "b", GroupID: 7, MeaningID: -1},
		{ID: 2, Lang: "fra", Text: "c", GroupID: 8, MeaningID: -1},
	} {
		if err := UpsertSentence(conn, s); err != nil {
			t.Fatalf("UpsertSentence failed: %v", err)
		}
	}

	ids, err := GetGroupMembers(conn, 7)
	if err != nil {
		t.Fatalf("GetGroupMembers failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("members = %v, want [1 3]", ids)
	}
}

func TestLoadProgress(t *testing.T) {
	conn := openTestDB(t)

	idx, err := GetLoadProgress(conn, "corpus")
	if err != nil {
		t.Fatalf("GetLoadProgress failed: %v", err)
	}
	if idx != -1 {
		t.Errorf("fresh progress = %d, want -1", idx)
	}

	if err := UpdateLoadProgress(conn, "corpus", 41); err != nil {
		t.Fatalf("UpdateLoadProgress failed: %v", err)
	}
	if err := UpdateLoadProgress(conn, "corpus", 42); err != nil {
		t.Fatalf("UpdateLoadProgress failed: %v", err)
	}

	idx, err = GetLoadProgress(conn, "corpus")
	if err != nil {
		t.Fatalf("GetLoadProgress failed: %v", err)
	}
	if idx != 42 {
		t.Errorf("progress = %d, want 42", idx)
	}
}
