// Package corpus loads the Tatoeba corpus files (sentences, links and
// jpn_indices) into read-only in-memory indexes. Every reader consumes
// its whole source eagerly at construction: a load either fully
// succeeds or fails with no partial value observable. Once built, a
// reader is immutable and safe to share across goroutines.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// SentenceID identifies a sentence within a loaded corpus.
type SentenceID int

// Reader is the read-only lookup capability every corpus reader
// provides: a key set, membership, and a size.
type Reader interface {
	Len() int
	IDs() []SentenceID
	Has(id SentenceID) bool
}

// maxRowSize bounds a single corpus row. Tatoeba sentences are short;
// 1 MiB leaves generous room for pathological rows.
const maxRowSize = 1 << 20

// eachRow reads tab-delimited rows from r and calls fn with the
// 1-based line number and the split columns. Blank lines are skipped.
func eachRow(r io.Reader, fn func(line int, cols []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRowSize)

	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if text == "" {
			continue
		}
		if err := fn(line, strings.Split(text, "\t")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// sourceName names an input for diagnostics: the filename when the
// reader is an *os.File, a generic tag otherwise.
func sourceName(r io.Reader) string {
	if f, ok := r.(*os.File); ok {
		return f.Name()
	}
	return fmt.Sprintf("reader(%T)", r)
}
