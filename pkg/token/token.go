package token

import "context"

// Token is a single tagged unit of text produced by a Source.
// The classification core never inspects tokens itself; only registered
// predicates do. A token sequence is ordered left-to-right and may be empty.
type Token struct {
	// Surface is the token exactly as it appeared in the source text.
	Surface string

	// Lemma is the normalized (dictionary) form of the token.
	Lemma string

	// Tag is the grammatical category assigned by the tagger
	// (e.g., "verb", "noun", "adj").
	Tag string
}

// Source converts raw text into an ordered sequence of tagged tokens.
// Implementations must be deterministic and side-effect-free: the same
// text always yields the same sequence. The core calls TokenizeAndTag
// exactly once per ClassifyText call.
type Source interface {
	TokenizeAndTag(ctx context.Context, text string) ([]Token, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context, text string) ([]Token, error)

// TokenizeAndTag calls f.
func (f SourceFunc) TokenizeAndTag(ctx context.Context, text string) ([]Token, error) {
	return f(ctx, text)
}
