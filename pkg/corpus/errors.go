package corpus

import "fmt"

// InvalidFileError reports a malformed source row (wrong column count
// or a non-integer id). It is fatal: construction of the reader aborts
// and no partial value is returned.
type InvalidFileError struct {
	Src  string
	Line int
	Msg  string
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("corpus: %s: line %d: %s", e.Src, e.Line, e.Msg)
}

// InvalidIDError reports a lookup for a well-formed id that is not in
// the loaded data. It is local to the call.
type InvalidIDError struct {
	ID  SentenceID
	Msg string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("corpus: %s %d", e.Msg, e.ID)
}

// MissingDataError reports a lookup for data the source never carried,
// such as detail metadata from a 3-column sentences file.
type MissingDataError struct {
	Msg string
}

func (e *MissingDataError) Error() string {
	return "corpus: " + e.Msg
}

// InvalidArgumentError reports a configuration value outside the
// recognized set, such as an unknown link filter mode.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return "corpus: " + e.Msg
}
