// Package analyze annotates plain Japanese sentences with a
// morphological analyzer. It is the fallback for corpus sentences that
// carry no Tanaka annotation: the output uses the same word type as
// the jpn_indices parser, with the lemma as headword and the surface
// form as display.
package analyze

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/japaniel/tatoebago/pkg/dictionary"
	"github.com/japaniel/tatoebago/pkg/tanaka"
)

// Analyzer segments Japanese text into annotated words.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer creates a new analyzer backed by the IPA dictionary.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Annotate breaks text into tanaka words. Kagome IPA features:
//
//	0: Part of Speech ... 6: Base Form (Lemma), 7: Reading (Katakana)
//
// The lemma becomes the headword and the surface form is recorded as
// the display when the two differ. Readings come back in katakana and
// are converted to hiragana, matching the annotation corpus; a reading
// identical to the headword is left unset, as the reading resolver
// does.
func (a *Analyzer) Annotate(text string) ([]tanaka.Word, error) {
	tokens := a.t.Tokenize(text)
	var words []tanaka.Word

	for _, token := range tokens {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}

		features := token.Features()

		headword := token.Surface
		if len(features) > 6 && features[6] != "*" {
			headword = features[6]
		}

		reading := ""
		if len(features) > 7 && features[7] != "*" {
			reading = dictionary.ToHiragana(features[7])
		}
		if reading == headword {
			reading = ""
		}

		w := tanaka.Word{Headword: headword, Reading: reading}
		if token.Surface != headword {
			w.Display = token.Surface
		}
		words = append(words, w)
	}
	return words, nil
}
