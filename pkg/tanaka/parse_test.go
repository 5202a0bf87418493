package tanaka

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSentenceFullAnnotation(t *testing.T) {
	words, err := ParseSentence("彼(かれ)[1] は 英語(えいご) を 話す{話します}~", nil)
	if err != nil {
		t.Fatalf("ParseSentence failed: %v", err)
	}

	expected := []Word{
		{Headword: "彼", Reading: "かれ", Sense: 1},
		{Headword: "は"},
		{Headword: "英語", Reading: "えいご"},
		{Headword: "を"},
		{Headword: "話す", Display: "話します", Example: true},
	}

	if len(words) != len(expected) {
		t.Fatalf("got %d words, want %d: %v", len(words), len(expected), words)
	}
	for i, want := range expected {
		if !words[i].Equal(want) {
			t.Errorf("word %d: got %+v, want %+v", i, words[i], want)
		}
	}
}

func TestParseSentenceBareHeadword(t *testing.T) {
	words, err := ParseSentence("彼(かれ)[1] は", nil)
	if err != nil {
		t.Fatalf("ParseSentence failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}

	w := words[1]
	if w.Headword != "は" || w.Reading != "" || w.Sense != 0 || w.Display != "" || w.Example {
		t.Errorf("bare headword parsed with extra fields: %+v", w)
	}
	if w.String() != "は" {
		t.Errorf("rendered form %q, want %q", w.String(), "は")
	}
}

func TestParseSentenceSkipsEmptyTokens(t *testing.T) {
	words, err := ParseSentence("彼  は", nil)
	if err != nil {
		t.Fatalf("ParseSentence failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2: %v", len(words), words)
	}
}

func TestParseSentenceTrailingDigits(t *testing.T) {
	// A trailing run of digits outside any bracket is ignored.
	words, err := ParseSentence("及ぶ{及んだ}2", nil)
	if err != nil {
		t.Fatalf("ParseSentence failed: %v", err)
	}
	want := Word{Headword: "及ぶ", Display: "及んだ"}
	if len(words) != 1 || !words[0].Equal(want) {
		t.Fatalf("got %v, want [%+v]", words, want)
	}
}

func TestParseSentenceGrammarError(t *testing.T) {
	// A token starting with a field delimiter has no headword.
	text := "彼 (かれ)"
	_, err := ParseSentence(text, nil)
	if err == nil {
		t.Fatal("expected grammar error, got nil")
	}

	var gerr *EntryGrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *EntryGrammarError, got %T: %v", err, err)
	}
	if gerr.Token != "(かれ)" {
		t.Errorf("error token %q, want %q", gerr.Token, "(かれ)")
	}
	if gerr.Sentence != text {
		t.Errorf("error sentence %q, want %q", gerr.Sentence, text)
	}
}

func TestParseSentenceCustomSplitter(t *testing.T) {
	split := func(s string) []string { return strings.Split(s, "/") }
	words, err := ParseSentence("彼(かれ)/は", split)
	if err != nil {
		t.Fatalf("ParseSentence failed: %v", err)
	}
	if len(words) != 2 || words[0].Reading != "かれ" || words[1].Headword != "は" {
		t.Fatalf("custom splitter result: %v", words)
	}
}

func TestWordStringRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "bare", input: "は"},
		{name: "reading", input: "彼(かれ)"},
		{name: "reading and sense", input: "彼(かれ)[1]"},
		{name: "display", input: "話す{話します}"},
		{name: "everything", input: "行く(いく)[2]{行った}~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := ParseSentence(tt.input, nil)
			if err != nil {
				t.Fatalf("ParseSentence failed: %v", err)
			}
			if len(words) != 1 {
				t.Fatalf("got %d words, want 1", len(words))
			}
			if got := words[0].String(); got != tt.input {
				t.Errorf("round trip: got %q, want %q", got, tt.input)
			}
		})
	}
}

func TestWordEqualResolvesDisplay(t *testing.T) {
	a := Word{Headword: "は"}
	b := Word{Headword: "は", Display: "は"}
	if !a.Equal(b) {
		t.Error("unset display should equal explicit display identical to headword")
	}

	c := Word{Headword: "は", Example: true}
	if a.Equal(c) {
		t.Error("example marker should participate in equality")
	}
}
