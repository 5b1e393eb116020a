// Package tokenizer provides a simple deterministic token.Source: a
// whitespace-and-punctuation splitter combined with a lexicon-driven
// tagger.
//
// It exists so the CLI, examples, and tests have a working pipeline out of
// the box. It is not a real morphological analyzer; deployments with actual
// NLP requirements should implement token.Source against their own tagger.
package tokenizer
