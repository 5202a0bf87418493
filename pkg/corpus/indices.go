package corpus

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/japaniel/tatoebago/pkg/tanaka"
)

// IndexOption configures an IndexReader.
type IndexOption func(*indexConfig)

type indexConfig struct {
	dict   tanaka.Dictionary
	split  tanaka.SplitFunc
	subset map[SentenceID]struct{}
}

// WithDictionary supplies a dictionary used to fill in missing word
// readings after parsing. Without one, words keep only what their
// annotation carried.
func WithDictionary(d tanaka.Dictionary) IndexOption {
	return func(c *indexConfig) { c.dict = d }
}

// WithSplitFunc replaces the default space tokenizer used on annotated
// sentence text.
func WithSplitFunc(f tanaka.SplitFunc) IndexOption {
	return func(c *indexConfig) { c.split = f }
}

// WithIndexIDSubset restricts loading to annotation rows whose
// sentence id is in ids.
func WithIndexIDSubset(ids ...SentenceID) IndexOption {
	return func(c *indexConfig) {
		c.subset = make(map[SentenceID]struct{}, len(ids))
		for _, id := range ids {
			c.subset[id] = struct{}{}
		}
	}
}

// IndexReader loads a jpn_indices file: per Japanese sentence, the id
// of its linked English meaning and the parsed, reading-resolved word
// annotations.
type IndexReader struct {
	src      string
	words    map[SentenceID][]tanaka.Word
	meanings map[SentenceID]SentenceID
}

// NewIndexReader reads a jpn_indices file from r. Rows must have three
// columns (sentence id, meaning id, annotated text); annotations are
// parsed eagerly, so a grammar violation anywhere in the file aborts
// the load with a *tanaka.EntryGrammarError.
func NewIndexReader(r io.Reader, opts ...IndexOption) (*IndexReader, error) {
	cfg := indexConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	ir := &IndexReader{
		src:      sourceName(r),
		words:    make(map[SentenceID][]tanaka.Word),
		meanings: make(map[SentenceID]SentenceID),
	}

	err := eachRow(r, func(line int, cols []string) error {
		if len(cols) != 3 {
			return &InvalidFileError{Src: ir.src, Line: line,
				Msg: "index files must have 3 columns"}
		}
		rawSent, err := strconv.Atoi(cols[0])
		if err != nil {
			return &InvalidFileError{Src: ir.src, Line: line,
				Msg: fmt.Sprintf("non-integer sentence id %q", cols[0])}
		}
		rawMeaning, err := strconv.Atoi(cols[1])
		if err != nil {
			return &InvalidFileError{Src: ir.src, Line: line,
				Msg: fmt.Sprintf("non-integer meaning id %q", cols[1])}
		}
		id := SentenceID(rawSent)

		if cfg.subset != nil && !member(cfg.subset, id) {
			return nil
		}

		words, err := tanaka.ParseSentence(cols[2], cfg.split)
		if err != nil {
			return err
		}
		words = tanaka.ResolveReadings(words, cfg.dict)

		ir.words[id] = words
		ir.meanings[id] = SentenceID(rawMeaning)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ir, nil
}

// LoadIndexFile opens path and reads it with NewIndexReader.
func LoadIndexFile(path string, opts ...IndexOption) (*IndexReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewIndexReader(f, opts...)
}

// Words returns the annotated word list of the sentence with the
// given id.
func (ir *IndexReader) Words(id SentenceID) ([]tanaka.Word, error) {
	words, ok := ir.words[id]
	if !ok {
		return nil, &InvalidIDError{ID: id, Msg: "no annotation found for sentence id"}
	}
	return words, nil
}

// Meaning returns the id of the linked English meaning recorded by the
// annotation source for the given sentence.
func (ir *IndexReader) Meaning(id SentenceID) (SentenceID, error) {
	meaning, ok := ir.meanings[id]
	if !ok {
		return 0, &InvalidIDError{ID: id, Msg: "not found sentence id"}
	}
	return meaning, nil
}

// Len returns the number of annotated sentences.
func (ir *IndexReader) Len() int { return len(ir.words) }

// Has reports whether the given sentence id carries an annotation.
func (ir *IndexReader) Has(id SentenceID) bool {
	_, ok := ir.words[id]
	return ok
}

// IDs returns the annotated sentence ids in ascending order.
func (ir *IndexReader) IDs() []SentenceID {
	ids := make([]SentenceID, 0, len(ir.words))
	for id := range ir.words {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (ir *IndexReader) String() string {
	return fmt.Sprintf("IndexReader(jpn_indices=%q)", ir.src)
}
