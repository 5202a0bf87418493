// Package tanaka parses Tanaka-corpus style word annotations as used by
// the Tatoeba jpn_indices file. Each annotated token tags one word of a
// Japanese sentence with its dictionary headword and, optionally, a
// reading, a sense number, a display form and an example marker:
//
//	彼(かれ)[1] は 英語(えいご) を 話す{話します}~
//
// More information on the format can be found at
// http://www.edrdg.org/wiki/index.php/Sentence-Dictionary_Linking
package tanaka

import (
	"fmt"
	"strings"
)

// Word is a single annotated token. Headword is always present; the
// zero value of each remaining field means the annotation did not carry
// it (Sense is 1-based, so 0 is "unset").
type Word struct {
	Headword string
	Reading  string
	Sense    int
	Display  string
	Example  bool
}

// ResolveDisplay returns the surface form of the word: the display
// field when the annotation carried one, the headword otherwise.
func (w Word) ResolveDisplay() string {
	if w.Display != "" {
		return w.Display
	}
	return w.Headword
}

// String renders the word back into its annotated form. A word parsed
// without optional fields renders as its bare headword.
func (w Word) String() string {
	var b strings.Builder
	b.WriteString(w.Headword)
	if w.Reading != "" {
		fmt.Fprintf(&b, "(%s)", w.Reading)
	}
	if w.Sense != 0 {
		fmt.Fprintf(&b, "[%d]", w.Sense)
	}
	if w.Display != "" {
		fmt.Fprintf(&b, "{%s}", w.Display)
	}
	if w.Example {
		b.WriteString("~")
	}
	return b.String()
}

// Equal reports whether two words carry the same annotation. Display is
// compared through ResolveDisplay, so an unset display equals an
// explicit display identical to the headword. The example marker is
// context specific but still participates in equality.
func (w Word) Equal(other Word) bool {
	return w.Headword == other.Headword &&
		w.Reading == other.Reading &&
		w.Sense == other.Sense &&
		w.Example == other.Example &&
		w.ResolveDisplay() == other.ResolveDisplay()
}
