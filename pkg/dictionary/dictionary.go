// Package dictionary loads jmdict-simplified JSON files and exposes
// them as a headword-to-readings index for reading resolution.
package dictionary

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/japaniel/tatoebago/pkg/tanaka"
)

// JMdictEntry matches the structure of jmdict-simplified entries.
type JMdictEntry struct {
	Id    string          `json:"id"`
	Kanji []JMdictElement `json:"kanji"`
	Kana  []JMdictElement `json:"kana"`
	Sense []JMdictSense   `json:"sense"`
}

type JMdictElement struct {
	Text   string   `json:"text"`
	Common bool     `json:"common"`
	Tags   []string `json:"tags"`
}

type JMdictSense struct {
	PartOfSpeech []string      `json:"partOfSpeech"`
	Gloss        []JMdictGloss `json:"gloss"`
}

type JMdictGloss struct {
	Text string `json:"text"`
	Lang string `json:"lang"` // defaults to 'eng' if missing
}

// LoadJMdictSimplified reads a jmdict-simplified JSON file. Both the
// wrapper form {"words": [...]} and a bare array are accepted.
func LoadJMdictSimplified(path string) ([]JMdictEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wrapper struct {
		Words []JMdictEntry `json:"words"`
	}
	dec := json.NewDecoder(f)
	if err := dec.Decode(&wrapper); err == nil && len(wrapper.Words) > 0 {
		return wrapper.Words, nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	var entries []JMdictEntry
	dec = json.NewDecoder(f)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary as object or array: %w", err)
	}
	return entries, nil
}

// ReadingIndex maps headwords to their ordered kana readings. It
// implements tanaka.Dictionary, so it can drive reading resolution
// when loading jpn_indices annotations.
type ReadingIndex struct {
	readings map[string][]string
}

// NewReadingIndex builds a ReadingIndex from jmdict-simplified
// entries. Each kanji spelling of an entry is keyed to that entry's
// kana readings in order; entries written only in kana are keyed by
// their kana form. When several entries share a spelling their
// readings concatenate in entry order.
func NewReadingIndex(entries []JMdictEntry) *ReadingIndex {
	idx := make(map[string][]string)
	for _, e := range entries {
		kana := make([]string, 0, len(e.Kana))
		for _, k := range e.Kana {
			kana = append(kana, ToHiragana(k.Text))
		}
		if len(kana) == 0 {
			continue
		}
		if len(e.Kanji) == 0 {
			for _, k := range e.Kana {
				idx[k.Text] = append(idx[k.Text], kana...)
			}
			continue
		}
		for _, k := range e.Kanji {
			idx[k.Text] = append(idx[k.Text], kana...)
		}
	}
	return &ReadingIndex{readings: idx}
}

// Lookup returns the ordered readings of a headword.
func (ix *ReadingIndex) Lookup(headword string) (tanaka.Entry, bool) {
	readings, ok := ix.readings[headword]
	if !ok {
		return tanaka.Entry{}, false
	}
	return tanaka.Entry{Readings: readings}, true
}

// Len returns the number of indexed headwords.
func (ix *ReadingIndex) Len() int { return len(ix.readings) }

// ToHiragana converts Katakana to Hiragana.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
