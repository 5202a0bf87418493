package db

import "time"

// SentenceRow is one persisted sentence with its corpus metadata.
type SentenceRow struct {
	ID           int64
	Lang         string
	Text         string
	Username     string
	DateAdded    time.Time
	DateModified time.Time
	GroupID      int64 // -1 when the sentence is in no translation group
	MeaningID    int64 // -1 when the annotation source recorded no meaning
}

// WordRow is one persisted word annotation of a sentence.
type WordRow struct {
	ID         int64
	SentenceID int64
	Position   int
	Headword   string
	Reading    string
	Sense      int
	Display    string
	Example    bool
}
