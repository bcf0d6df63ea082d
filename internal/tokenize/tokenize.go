// Package tokenize splits raw text into the sentences and words a language
// model trains on. Unlike retrieval pipelines, nothing is filtered: every
// word carries probability mass, including single letters and numbers.
package tokenize

import (
	"strings"
	"unicode"
)

// Sentences splits text on sentence-final punctuation and blank lines.
func Sentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i, r := range text {
		switch r {
		case '.', '!', '?':
			current.WriteRune(r)
			flush()
		case '\n':
			// A blank line ends a sentence even without punctuation.
			if i+1 < len(text) && text[i+1] == '\n' {
				flush()
			} else {
				current.WriteRune(' ')
			}
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return sentences
}

// Words splits a sentence into lowercased word tokens. Runs of letters,
// numbers, hyphens and apostrophes form a token; everything else separates.
func Words(sentence string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range sentence {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			if current.Len() > 0 {
				if word := cleanToken(current.String()); word != "" {
					tokens = append(tokens, word)
				}
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		if word := cleanToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// Text tokenizes a whole document into sentences of words, dropping
// sentences that contain no words at all.
func Text(text string) [][]string {
	var out [][]string
	for _, s := range Sentences(text) {
		if words := Words(s); len(words) > 0 {
			out = append(out, words)
		}
	}
	return out
}

// cleanToken removes leading/trailing hyphens and apostrophes.
func cleanToken(token string) string {
	return strings.Trim(token, "-'")
}
