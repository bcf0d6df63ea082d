package tokenize

import (
	"reflect"
	"testing"
)

func TestSentences(t *testing.T) {
	got := Sentences("One two. Three four! Five?")
	want := []string{"One two.", "Three four!", "Five?"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences = %v, want %v", got, want)
	}
}

func TestSentencesBlankLine(t *testing.T) {
	got := Sentences("first line\nstill first\n\nsecond paragraph")
	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2: %v", len(got), got)
	}
	if got[0] != "first line still first" {
		t.Errorf("first sentence = %q", got[0])
	}
}

func TestWords(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"gpt-4 and UTF-8", []string{"gpt-4", "and", "utf-8"}},
		{"don't stop", []string{"don't", "stop"}},
		{"--dashed-- 'quoted'", []string{"dashed", "quoted"}},
		{"a b c", []string{"a", "b", "c"}},
		{"", nil},
	}
	for _, tc := range cases {
		if got := Words(tc.input); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Words(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestText(t *testing.T) {
	got := Text("First one. ... Second one!")
	want := [][]string{{"first", "one"}, {"second", "one"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Text = %v, want %v", got, want)
	}
}
