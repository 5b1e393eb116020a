package tokenizer

import (
	"context"
	"strings"
	"unicode"

	"sentra-hq/sentra/pkg/lexicon"
	"sentra-hq/sentra/pkg/token"
)

// UnknownTag is assigned to tokens with no lexicon entry.
const UnknownTag = "x"

// Simple is a deterministic whitespace-and-punctuation tokenizer with a
// lexicon-driven tagger. It implements token.Source for the CLI, examples,
// and tests; production deployments plug in their own NLP pipeline instead.
type Simple struct {
	store lexicon.Store
}

// NewSimple creates a tokenizer backed by the given lexicon. A nil store is
// allowed: every token then gets its lowercased surface as lemma and the
// UnknownTag tag.
func NewSimple(store lexicon.Store) *Simple {
	return &Simple{store: store}
}

// TokenizeAndTag splits the text into word tokens and tags each one from
// the lexicon. Punctuation is dropped; hyphens and apostrophes inside a
// word are kept. The output depends only on the input text and the lexicon
// contents.
func (s *Simple) TokenizeAndTag(ctx context.Context, text string) ([]token.Token, error) {
	words := split(text)
	tokens := make([]token.Token, 0, len(words))

	for _, word := range words {
		t := token.Token{
			Surface: word,
			Lemma:   strings.ToLower(word),
			Tag:     UnknownTag,
		}

		if s.store != nil {
			entry, err := s.store.Lookup(ctx, word)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				t.Lemma = entry.Lemma
				t.Tag = entry.Tag
			}
		}

		tokens = append(tokens, t)
	}

	return tokens, nil
}

// split breaks text into words, treating any rune that is neither a letter,
// a digit, nor a word-internal hyphen/apostrophe as a separator.
func split(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.Trim(current.String(), "-'"))
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case r == '-' || r == '\'':
			if current.Len() > 0 {
				current.WriteRune(r)
			}
		default:
			flush()
		}
	}
	flush()

	// Trimming can empty a word made only of hyphens/apostrophes.
	filtered := words[:0]
	for _, w := range words {
		if w != "" {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
