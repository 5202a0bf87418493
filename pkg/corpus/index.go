package corpus

import (
	"github.com/japaniel/tatoebago/pkg/tanaka"
)

// Index is the combined read-only lookup surface over a loaded corpus:
// sentence text and language, detail metadata, translation groups and
// per-word annotations, all keyed by sentence id. Build each reader
// first and compose them here; a nil Links or Indices reader makes the
// corresponding lookups fail with *MissingDataError.
type Index struct {
	sentences *SentenceReader
	links     *LinksReader
	indices   *IndexReader
}

// NewIndex composes an Index from its readers. Sentences is required.
func NewIndex(sentences *SentenceReader, links *LinksReader, indices *IndexReader) (*Index, error) {
	if sentences == nil {
		return nil, &InvalidArgumentError{Msg: "index requires a sentence reader"}
	}
	return &Index{sentences: sentences, links: links, indices: indices}, nil
}

// Sentences returns the underlying sentence reader.
func (ix *Index) Sentences() *SentenceReader { return ix.sentences }

// SentenceText returns the raw text of the sentence with the given id.
func (ix *Index) SentenceText(id SentenceID) (string, error) {
	return ix.sentences.Sentence(id)
}

// Language returns the language code of the sentence with the given id.
func (ix *Index) Language(id SentenceID) (string, error) {
	return ix.sentences.Language(id)
}

// Details returns the detail metadata of the sentence with the given id.
func (ix *Index) Details(id SentenceID) (Details, error) {
	return ix.sentences.Details(id)
}

// Group returns the translation group of the sentence with the given id.
func (ix *Index) Group(id SentenceID) (Group, error) {
	if ix.links == nil {
		return nil, &MissingDataError{Msg: "links not loaded"}
	}
	return ix.links.Group(id)
}

// Groups returns all distinct translation groups.
func (ix *Index) Groups() []Group {
	if ix.links == nil {
		return nil
	}
	return ix.links.Groups()
}

// AnnotatedWords returns the parsed, reading-resolved word list of the
// sentence with the given id.
func (ix *Index) AnnotatedWords(id SentenceID) ([]tanaka.Word, error) {
	if ix.indices == nil {
		return nil, &MissingDataError{Msg: "annotations not loaded"}
	}
	return ix.indices.Words(id)
}

// LinkedMeaning returns the linked meaning id recorded by the
// annotation source for the sentence with the given id. This is the
// annotation cross-reference, distinct from the link-graph group.
func (ix *Index) LinkedMeaning(id SentenceID) (SentenceID, error) {
	if ix.indices == nil {
		return 0, &MissingDataError{Msg: "annotations not loaded"}
	}
	return ix.indices.Meaning(id)
}
