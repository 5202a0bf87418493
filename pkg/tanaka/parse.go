package tanaka

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SplitFunc breaks an annotated sentence into raw tokens before each
// token is matched against the annotation grammar. The default splits
// on a single space, which is what jpn_indices uses.
type SplitFunc func(text string) []string

// SplitSpace is the default SplitFunc.
func SplitSpace(text string) []string {
	return strings.Split(text, " ")
}

// wordRe encodes the token grammar. The fields are ordered and all but
// the headword are optional; a trailing run of digits is ignored.
var wordRe = regexp.MustCompile(
	`^(?P<headword>[^\(\[\{\|\~]+)` +
		`(?:\((?P<reading>[^\)]+)\))?` +
		`(?:\[(?P<sense>[0-9]+)\])?` +
		`(?:\{(?P<display>[^\}]+)\})?` +
		`(?P<example>~)?` +
		`[0-9]*$`)

var (
	readingIdx = wordRe.SubexpIndex("reading")
	senseIdx   = wordRe.SubexpIndex("sense")
	displayIdx = wordRe.SubexpIndex("display")
	exampleIdx = wordRe.SubexpIndex("example")
	headIdx    = wordRe.SubexpIndex("headword")
)

// EntryGrammarError reports a token that does not match the annotation
// grammar. It carries the offending token and the full sentence for
// diagnostics.
type EntryGrammarError struct {
	Token    string
	Sentence string
}

func (e *EntryGrammarError) Error() string {
	return fmt.Sprintf("tanaka: could not interpret word %q in sentence: %s", e.Token, e.Sentence)
}

// ParseSentence parses an annotated sentence into its ordered word
// list. Empty tokens produced by the splitter are skipped; any
// non-empty token that fails the grammar aborts the parse with an
// *EntryGrammarError. A nil split uses SplitSpace.
func ParseSentence(text string, split SplitFunc) ([]Word, error) {
	if split == nil {
		split = SplitSpace
	}

	var words []Word
	for _, tok := range split(text) {
		if len(tok) == 0 {
			continue
		}

		m := wordRe.FindStringSubmatch(tok)
		if m == nil {
			return nil, &EntryGrammarError{Token: tok, Sentence: text}
		}

		w := Word{
			Headword: m[headIdx],
			Reading:  m[readingIdx],
			Display:  m[displayIdx],
			Example:  m[exampleIdx] != "",
		}
		if s := m[senseIdx]; s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, &EntryGrammarError{Token: tok, Sentence: text}
			}
			w.Sense = n
		}
		words = append(words, w)
	}
	return words, nil
}
