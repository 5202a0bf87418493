package tanaka

import "testing"

// mapDict is a trivial in-memory Dictionary for tests.
type mapDict map[string][]string

func (d mapDict) Lookup(headword string) (Entry, bool) {
	readings, ok := d[headword]
	return Entry{Readings: readings}, ok
}

func TestResolveReadings(t *testing.T) {
	dict := mapDict{
		"英語": {"えいご"},
		"彼":  {"かれ", "だれ"},
		"国分": {"こくぶ", "こくぶ", "こくぶ"},
		"は":  {"は"},
	}

	tests := []struct {
		name string
		word Word
		want string
	}{
		{
			name: "single reading fills in",
			word: Word{Headword: "英語"},
			want: "えいご",
		},
		{
			name: "sense selects reading",
			word: Word{Headword: "彼", Sense: 2},
			want: "だれ",
		},
		{
			name: "out of range sense with ambiguous readings stays unset",
			word: Word{Headword: "彼", Sense: 5},
			want: "",
		},
		{
			name: "no sense with ambiguous readings stays unset",
			word: Word{Headword: "彼"},
			want: "",
		},
		{
			name: "uniform readings collapse to one",
			word: Word{Headword: "国分"},
			want: "こくぶ",
		},
		{
			name: "reading equal to headword stays unset",
			word: Word{Headword: "は"},
			want: "",
		},
		{
			name: "unknown headword untouched",
			word: Word{Headword: "misc"},
			want: "",
		},
		{
			name: "existing reading never overwritten",
			word: Word{Headword: "英語", Reading: "えーご"},
			want: "えーご",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := ResolveReadings([]Word{tt.word}, dict)
			if words[0].Reading != tt.want {
				t.Errorf("reading = %q, want %q", words[0].Reading, tt.want)
			}
		})
	}
}

func TestResolveReadingsNilDictionary(t *testing.T) {
	in := []Word{{Headword: "英語"}}
	out := ResolveReadings(in, nil)
	if out[0].Reading != "" {
		t.Errorf("nil dictionary must leave words unchanged, got reading %q", out[0].Reading)
	}
}
