package corpus

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// FilterMode selects which endpoints of a link row are screened
// against the configured sentence id subset.
type FilterMode string

const (
	// FilterSentenceID screens only the sentence id endpoint.
	FilterSentenceID FilterMode = "sentence_id"
	// FilterTranslationID screens only the translation id endpoint.
	FilterTranslationID FilterMode = "translation_id"
	// FilterBoth screens both endpoints. This is the default.
	FilterBoth FilterMode = "both"
)

// Group is one translation group: the set of sentence ids that are
// mutually linked as translations of one another.
type Group map[SentenceID]struct{}

// Has reports whether id belongs to the group.
func (g Group) Has(id SentenceID) bool {
	_, ok := g[id]
	return ok
}

// IDs returns the members of the group in ascending order.
func (g Group) IDs() []SentenceID {
	ids := make([]SentenceID, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Equal reports whether two groups hold the same members.
func (g Group) Equal(other Group) bool {
	if len(g) != len(other) {
		return false
	}
	for id := range g {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// LinkOption configures a LinksReader.
type LinkOption func(*linkConfig)

type linkConfig struct {
	subset map[SentenceID]struct{}
	mode   FilterMode
}

// WithIDSubset restricts which link rows are loaded: only edges whose
// screened endpoints (per the filter mode) are members of ids are
// kept. Without a subset every edge is kept.
func WithIDSubset(ids ...SentenceID) LinkOption {
	return func(c *linkConfig) {
		c.subset = make(map[SentenceID]struct{}, len(ids))
		for _, id := range ids {
			c.subset[id] = struct{}{}
		}
	}
}

// WithFilterMode selects which endpoints the id subset applies to.
func WithFilterMode(mode FilterMode) LinkOption {
	return func(c *linkConfig) { c.mode = mode }
}

// LinksReader reconstructs translation groups from a Tatoeba links
// file. Grouping is a single greedy pass: an edge joins its unseen
// endpoint to the group of the endpoint seen first, and a fresh group
// is opened when neither endpoint has been seen. Two distinct existing
// groups are never merged; this relies on the corpus property that a
// sentence's link rows arrive contiguously, and is deliberately not a
// general connected-components algorithm.
type LinksReader struct {
	src        string
	assignment map[SentenceID]int
	groups     map[int]Group
}

// NewLinksReader reads a links file from r. Every row must hold
// exactly two integer columns; anything else is an *InvalidFileError
// and no reader is returned. An unrecognized filter mode is an
// *InvalidArgumentError.
func NewLinksReader(r io.Reader, opts ...LinkOption) (*LinksReader, error) {
	cfg := linkConfig{mode: FilterBoth}
	for _, opt := range opts {
		opt(&cfg)
	}

	var filterSent, filterTrans bool
	switch cfg.mode {
	case FilterSentenceID:
		filterSent = true
	case FilterTranslationID:
		filterTrans = true
	case FilterBoth:
		filterSent, filterTrans = true, true
	default:
		return nil, &InvalidArgumentError{Msg: fmt.Sprintf("invalid link filter mode %q", cfg.mode)}
	}
	if cfg.subset == nil {
		filterSent, filterTrans = false, false
	}

	lr := &LinksReader{
		src:        sourceName(r),
		assignment: make(map[SentenceID]int),
		groups:     make(map[int]Group),
	}

	nextGroup := 0
	err := eachRow(r, func(line int, cols []string) error {
		if len(cols) != 2 {
			return &InvalidFileError{Src: lr.src, Line: line,
				Msg: "links files must have 2 columns"}
		}
		rawSent, err := strconv.Atoi(cols[0])
		if err != nil {
			return &InvalidFileError{Src: lr.src, Line: line,
				Msg: fmt.Sprintf("non-integer sentence id %q", cols[0])}
		}
		rawTrans, err := strconv.Atoi(cols[1])
		if err != nil {
			return &InvalidFileError{Src: lr.src, Line: line,
				Msg: fmt.Sprintf("non-integer translation id %q", cols[1])}
		}
		sentID, transID := SentenceID(rawSent), SentenceID(rawTrans)

		if filterSent && !member(cfg.subset, sentID) {
			return nil
		}
		if filterTrans && !member(cfg.subset, transID) {
			return nil
		}

		var groupID int
		var newIDs []SentenceID
		if g, ok := lr.assignment[sentID]; ok {
			groupID = g
			newIDs = []SentenceID{transID}
		} else if g, ok := lr.assignment[transID]; ok {
			groupID = g
			newIDs = []SentenceID{sentID}
		} else {
			groupID = nextGroup
			nextGroup++
			newIDs = []SentenceID{sentID, transID}
		}

		group := lr.groups[groupID]
		if group == nil {
			group = make(Group)
			lr.groups[groupID] = group
		}
		for _, id := range newIDs {
			group[id] = struct{}{}
			lr.assignment[id] = groupID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lr, nil
}

// LoadLinksFile opens path and reads it with NewLinksReader.
func LoadLinksFile(path string, opts ...LinkOption) (*LinksReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewLinksReader(f, opts...)
}

func member(set map[SentenceID]struct{}, id SentenceID) bool {
	_, ok := set[id]
	return ok
}

// Group returns the translation group the given sentence belongs to.
// Every member of a group gets the same Group value. Callers must not
// mutate it.
func (lr *LinksReader) Group(id SentenceID) (Group, error) {
	groupID, ok := lr.assignment[id]
	if !ok {
		return nil, &InvalidIDError{ID: id, Msg: "could not find in any group sentence id"}
	}
	return lr.groups[groupID], nil
}

// Groups returns all distinct translation groups.
func (lr *LinksReader) Groups() []Group {
	groups := make([]Group, 0, len(lr.groups))
	for _, g := range lr.groups {
		groups = append(groups, g)
	}
	return groups
}

// Len returns the number of sentence ids assigned to a group.
func (lr *LinksReader) Len() int { return len(lr.assignment) }

// Has reports whether the given id belongs to any group.
func (lr *LinksReader) Has(id SentenceID) bool {
	_, ok := lr.assignment[id]
	return ok
}

// IDs returns every grouped sentence id in ascending order.
func (lr *LinksReader) IDs() []SentenceID {
	ids := make([]SentenceID, 0, len(lr.assignment))
	for id := range lr.assignment {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (lr *LinksReader) String() string {
	return fmt.Sprintf("LinksReader(links=%q)", lr.src)
}
