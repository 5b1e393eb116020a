package predicate

import (
	"regexp"
	"strings"

	"sentra-hq/sentra/pkg/token"
)

// Builders for the common predicate shapes rule authors need. Embedding
// applications compose these when registering predicates in code; rule files
// reference them through the declarative predicates section in pkg/ruleset.

// LemmaIn returns a predicate that is true when the sequence contains a
// token whose lemma is in the given set. If tag is non-empty the token's
// grammatical tag must also match.
func LemmaIn(tag string, lemmas ...string) TokenFunc {
	set := stringSet(lemmas)
	return func(tokens []token.Token) bool {
		for _, t := range tokens {
			if tag != "" && t.Tag != tag {
				continue
			}
			if _, ok := set[strings.ToLower(t.Lemma)]; ok {
				return true
			}
		}
		return false
	}
}

// SurfaceIn returns a predicate that is true when the sequence contains a
// token whose surface form (case-insensitive) is in the given set.
func SurfaceIn(surfaces ...string) TokenFunc {
	set := stringSet(surfaces)
	return func(tokens []token.Token) bool {
		for _, t := range tokens {
			if _, ok := set[strings.ToLower(t.Surface)]; ok {
				return true
			}
		}
		return false
	}
}

// TagPresent returns a predicate that is true when any token carries the
// given grammatical tag.
func TagPresent(tag string) TokenFunc {
	return func(tokens []token.Token) bool {
		for _, t := range tokens {
			if t.Tag == tag {
				return true
			}
		}
		return false
	}
}

// FirstTag returns a predicate that is true when the first token carries
// the given grammatical tag.
func FirstTag(tag string) TokenFunc {
	return func(tokens []token.Token) bool {
		return len(tokens) > 0 && tokens[0].Tag == tag
	}
}

// MinTokens returns a predicate that is true when the sequence has at
// least n tokens.
func MinTokens(n int) TokenFunc {
	return func(tokens []token.Token) bool {
		return len(tokens) >= n
	}
}

// MaxTokens returns a predicate that is true when the sequence has at
// most n tokens.
func MaxTokens(n int) TokenFunc {
	return func(tokens []token.Token) bool {
		return len(tokens) <= n
	}
}

// TextContains returns a text predicate that is true when the raw text
// contains any of the given substrings (case-insensitive).
func TextContains(substrings ...string) TextFunc {
	lowered := make([]string, len(substrings))
	for i, s := range substrings {
		lowered[i] = strings.ToLower(s)
	}
	return func(_ []token.Token, text string) bool {
		lower := strings.ToLower(text)
		for _, s := range lowered {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

// TextMatches returns a text predicate that is true when the raw text
// matches the given regular expression. The pattern is compiled once at
// configuration time; an invalid pattern is a configuration error.
func TextMatches(pattern string) (TextFunc, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return func(_ []token.Token, text string) bool {
		return re.MatchString(text)
	}, nil
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
