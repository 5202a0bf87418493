package corpus

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"
)

// nullField is the Tatoeba marker for an absent detail column.
const nullField = `\N`

// detailTimeLayout is the timestamp format of sentences_detailed.csv.
const detailTimeLayout = "2006-01-02 15:04:05"

// Details is the extra metadata carried by a 6-column (detailed)
// sentences file. Zero values mean the column held \N.
type Details struct {
	Username     string
	DateAdded    time.Time
	DateModified time.Time
}

// RowFilter inspects a raw split row before it is loaded. Returning
// true drops the row.
type RowFilter func(cols []string) bool

// SentenceOption configures a SentenceReader.
type SentenceOption func(*sentenceConfig)

type sentenceConfig struct {
	languages map[string]struct{}
	filter    RowFilter
}

// WithLanguages restricts loading to sentences in the given 3-letter
// language codes. The default is {"jpn", "eng"}.
func WithLanguages(langs ...string) SentenceOption {
	return func(c *sentenceConfig) {
		c.languages = make(map[string]struct{}, len(langs))
		for _, l := range langs {
			c.languages[l] = struct{}{}
		}
	}
}

// WithAllLanguages disables the language filter entirely.
func WithAllLanguages() SentenceOption {
	return func(c *sentenceConfig) { c.languages = nil }
}

// WithRowFilter installs a predicate that can drop individual rows
// before they are parsed.
func WithRowFilter(f RowFilter) SentenceOption {
	return func(c *sentenceConfig) { c.filter = f }
}

// SentenceReader indexes a Tatoeba sentences file: text and language
// per sentence id, plus detail metadata when the source is the
// 6-column detailed format.
type SentenceReader struct {
	src     string
	text    map[SentenceID]string
	langIDs map[string]map[SentenceID]struct{}
	details map[SentenceID]Details // nil for a 3-column source
}

// NewSentenceReader reads a sentences or sentences_detailed file from
// r. The column count of the first row decides which format the whole
// file must follow; any other count is an *InvalidFileError.
func NewSentenceReader(r io.Reader, opts ...SentenceOption) (*SentenceReader, error) {
	cfg := sentenceConfig{}
	WithLanguages("jpn", "eng")(&cfg)
	for _, opt := range opts {
		opt(&cfg)
	}

	sr := &SentenceReader{
		src:     sourceName(r),
		text:    make(map[SentenceID]string),
		langIDs: make(map[string]map[SentenceID]struct{}),
	}

	detailed := false
	first := true

	err := eachRow(r, func(line int, cols []string) error {
		if first {
			first = false
			switch len(cols) {
			case 3:
			case 6:
				detailed = true
				sr.details = make(map[SentenceID]Details)
			default:
				return &InvalidFileError{Src: sr.src, Line: line,
					Msg: "sentences files must have either 3 or 6 columns"}
			}
		}

		want := 3
		if detailed {
			want = 6
		}
		if len(cols) != want {
			return &InvalidFileError{Src: sr.src, Line: line,
				Msg: fmt.Sprintf("expected %d columns, got %d", want, len(cols))}
		}

		if cfg.filter != nil && cfg.filter(cols) {
			return nil
		}

		lang := cols[1]
		if cfg.languages != nil {
			if _, ok := cfg.languages[lang]; !ok {
				return nil
			}
		}

		rawID, err := strconv.Atoi(cols[0])
		if err != nil {
			return &InvalidFileError{Src: sr.src, Line: line,
				Msg: fmt.Sprintf("non-integer sentence id %q", cols[0])}
		}
		id := SentenceID(rawID)

		if sr.langIDs[lang] == nil {
			sr.langIDs[lang] = make(map[SentenceID]struct{})
		}
		sr.langIDs[lang][id] = struct{}{}
		sr.text[id] = cols[2]

		if detailed {
			d := Details{}
			if cols[3] != nullField {
				d.Username = cols[3]
			}
			if d.DateAdded, err = parseDetailTime(cols[4]); err != nil {
				return &InvalidFileError{Src: sr.src, Line: line, Msg: err.Error()}
			}
			if d.DateModified, err = parseDetailTime(cols[5]); err != nil {
				return &InvalidFileError{Src: sr.src, Line: line, Msg: err.Error()}
			}
			sr.details[id] = d
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sr, nil
}

// LoadSentenceFile opens path and reads it with NewSentenceReader.
func LoadSentenceFile(path string, opts ...SentenceOption) (*SentenceReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewSentenceReader(f, opts...)
}

func parseDetailTime(s string) (time.Time, error) {
	if s == nullField {
		return time.Time{}, nil
	}
	t, err := time.Parse(detailTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q", s)
	}
	return t, nil
}

// Sentence returns the text of the sentence with the given id.
func (sr *SentenceReader) Sentence(id SentenceID) (string, error) {
	text, ok := sr.text[id]
	if !ok {
		return "", &InvalidIDError{ID: id, Msg: "could not find sentence with id"}
	}
	return text, nil
}

// Language returns the language code of the sentence with the given
// id. The scan over the language buckets is linear, which is fine: the
// bucket count equals the number of loaded languages.
func (sr *SentenceReader) Language(id SentenceID) (string, error) {
	for lang, ids := range sr.langIDs {
		if _, ok := ids[id]; ok {
			return lang, nil
		}
	}
	return "", &InvalidIDError{ID: id, Msg: "no language found for sentence id"}
}

// Details returns the detail metadata of the sentence with the given
// id. It fails with *MissingDataError when the source was the plain
// 3-column format.
func (sr *SentenceReader) Details(id SentenceID) (Details, error) {
	if sr.details == nil {
		return Details{}, &MissingDataError{Msg: "detailed information not loaded"}
	}
	d, ok := sr.details[id]
	if !ok {
		return Details{}, &InvalidIDError{ID: id, Msg: "detailed information not found for sentence id"}
	}
	return d, nil
}

// Len returns the number of loaded sentences.
func (sr *SentenceReader) Len() int { return len(sr.text) }

// Has reports whether a sentence with the given id was loaded.
func (sr *SentenceReader) Has(id SentenceID) bool {
	_, ok := sr.text[id]
	return ok
}

// IDs returns the loaded sentence ids in ascending order.
func (sr *SentenceReader) IDs() []SentenceID {
	ids := make([]SentenceID, 0, len(sr.text))
	for id := range sr.text {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (sr *SentenceReader) String() string {
	return fmt.Sprintf("SentenceReader(sentences=%q)", sr.src)
}
