package tanaka

// Entry is one dictionary record: the ordered readings of a headword,
// index 0 corresponding to sense 1.
type Entry struct {
	Readings []string
}

// Dictionary is the lookup capability ResolveReadings needs. A JMdict
// backed implementation lives in pkg/dictionary; anything keyed by
// headword works.
type Dictionary interface {
	Lookup(headword string) (Entry, bool)
}

// ResolveReadings fills in missing readings on the given words using
// dict and returns the same slice. A word is only touched when its
// reading is unset: the sense number selects a reading when it is in
// range, otherwise a reading is used only when the entry has a single
// distinct reading across all senses. A reading identical to the
// headword is never recorded. With a nil dict the words pass through
// unchanged.
func ResolveReadings(words []Word, dict Dictionary) []Word {
	if dict == nil {
		return words
	}

	for i := range words {
		w := &words[i]
		if w.Reading != "" {
			continue
		}

		entry, ok := dict.Lookup(w.Headword)
		if !ok {
			continue
		}

		reading := ""
		if w.Sense >= 1 && w.Sense <= len(entry.Readings) {
			reading = entry.Readings[w.Sense-1]
		} else if uniformReading(entry.Readings) {
			reading = entry.Readings[0]
		}

		if reading != "" && reading != w.Headword {
			w.Reading = reading
		}
	}
	return words
}

// uniformReading reports whether every reading in the list is the same
// non-empty string.
func uniformReading(readings []string) bool {
	if len(readings) == 0 {
		return false
	}
	for _, r := range readings[1:] {
		if r != readings[0] {
			return false
		}
	}
	return true
}
