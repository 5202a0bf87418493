package corpus

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleSentences = "6381\tjpn\t彼は英語を話します。\n" +
	"156245\teng\tHe speaks English.\n" +
	"258289\tfra\tIl parle anglais.\n"

const sampleDetailed = "6381\tjpn\t彼は英語を話します。\tmookeee\t2010-10-12 09:03:40\t2010-10-12 09:03:40\n" +
	"156245\teng\tHe speaks English.\t\\N\t\\N\t2011-01-02 18:30:00\n"

func TestSentenceReaderDefaultsToJpnEng(t *testing.T) {
	sr, err := NewSentenceReader(strings.NewReader(sampleSentences))
	if err != nil {
		t.Fatalf("NewSentenceReader failed: %v", err)
	}

	if sr.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (fra filtered out)", sr.Len())
	}

	text, err := sr.Sentence(6381)
	if err != nil {
		t.Fatalf("Sentence(6381) failed: %v", err)
	}
	if text != "彼は英語を話します。" {
		t.Errorf("Sentence(6381) = %q", text)
	}

	lang, err := sr.Language(156245)
	if err != nil {
		t.Fatalf("Language(156245) failed: %v", err)
	}
	if lang != "eng" {
		t.Errorf("Language(156245) = %q, want eng", lang)
	}

	if sr.Has(258289) {
		t.Error("fra sentence should have been filtered out")
	}
	var idErr *InvalidIDError
	if _, err := sr.Sentence(258289); !errors.As(err, &idErr) {
		t.Errorf("expected *InvalidIDError for filtered id, got %v", err)
	}
}

func TestSentenceReaderAllLanguages(t *testing.T) {
	sr, err := NewSentenceReader(strings.NewReader(sampleSentences), WithAllLanguages())
	if err != nil {
		t.Fatalf("NewSentenceReader failed: %v", err)
	}
	if sr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", sr.Len())
	}
	if lang, _ := sr.Language(258289); lang != "fra" {
		t.Errorf("Language(258289) = %q, want fra", lang)
	}
}

func TestSentenceReaderLanguageOption(t *testing.T) {
	sr, err := NewSentenceReader(strings.NewReader(sampleSentences), WithLanguages("fra"))
	if err != nil {
		t.Fatalf("NewSentenceReader failed: %v", err)
	}
	want := []SentenceID{258289}
	got := sr.IDs()
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestSentenceReaderDetails(t *testing.T) {
	sr, err := NewSentenceReader(strings.NewReader(sampleDetailed))
	if err != nil {
		t.Fatalf("NewSentenceReader failed: %v", err)
	}

	d, err := sr.Details(6381)
	if err != nil {
		t.Fatalf("Details(6381) failed: %v", err)
	}
	if d.Username != "mookeee" {
		t.Errorf("Username = %q, want mookeee", d.Username)
	}
	wantAdded := time.Date(2010, 10, 12, 9, 3, 40, 0, time.UTC)
	if !d.DateAdded.Equal(wantAdded) {
		t.Errorf("DateAdded = %v, want %v", d.DateAdded, wantAdded)
	}

	// \N columns stay unset.
	d2, err := sr.Details(156245)
	if err != nil {
		t.Fatalf("Details(156245) failed: %v", err)
	}
	if d2.Username != "" || !d2.DateAdded.IsZero() {
		t.Errorf("expected unset username and date_added, got %+v", d2)
	}
	if d2.DateModified.IsZero() {
		t.Error("DateModified should be set")
	}

	var idErr *InvalidIDError
	if _, err := sr.Details(99); !errors.As(err, &idErr) {
		t.Errorf("expected *InvalidIDError for unknown id, got %v", err)
	}
}

func TestSentenceReaderDetailsMissing(t *testing.T) {
	sr, err := NewSentenceReader(strings.NewReader(sampleSentences))
	if err != nil {
		t.Fatalf("NewSentenceReader failed: %v", err)
	}
	var missing *MissingDataError
	if _, err := sr.Details(6381); !errors.As(err, &missing) {
		t.Errorf("expected *MissingDataError for 3-column source, got %v", err)
	}
}

func TestSentenceReaderBadColumnCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "four columns", input: "1\tjpn\ttext\textra\n"},
		{name: "two columns", input: "1\tjpn\n"},
		{name: "second row truncated", input: "1\tjpn\ttext\n2\tjpn\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSentenceReader(strings.NewReader(tt.input))
			var fileErr *InvalidFileError
			if !errors.As(err, &fileErr) {
				t.Errorf("expected *InvalidFileError, got %v", err)
			}
		})
	}
}

func TestSentenceReaderNonIntegerID(t *testing.T) {
	_, err := NewSentenceReader(strings.NewReader("abc\tjpn\ttext\n"))
	var fileErr *InvalidFileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("expected *InvalidFileError, got %v", err)
	}
}

func TestSentenceReaderRowFilter(t *testing.T) {
	drop := func(cols []string) bool { return cols[0] == "6381" }
	sr, err := NewSentenceReader(strings.NewReader(sampleSentences), WithRowFilter(drop))
	if err != nil {
		t.Fatalf("NewSentenceReader failed: %v", err)
	}
	if sr.Has(6381) {
		t.Error("row filter should have dropped sentence 6381")
	}
	if !sr.Has(156245) {
		t.Error("row filter dropped too much")
	}
}

func TestSentenceReaderIdempotent(t *testing.T) {
	a, err := NewSentenceReader(strings.NewReader(sampleDetailed))
	if err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	b, err := NewSentenceReader(strings.NewReader(sampleDetailed))
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	aIDs, bIDs := a.IDs(), b.IDs()
	if len(aIDs) != len(bIDs) {
		t.Fatalf("id sets differ: %v vs %v", aIDs, bIDs)
	}
	for i := range aIDs {
		if aIDs[i] != bIDs[i] {
			t.Fatalf("id sets differ: %v vs %v", aIDs, bIDs)
		}
		ta, _ := a.Sentence(aIDs[i])
		tb, _ := b.Sentence(bIDs[i])
		if ta != tb {
			t.Errorf("text for %d differs: %q vs %q", aIDs[i], ta, tb)
		}
	}
}
