// Sentra is a rule-first sentence classification engine.
//
// It classifies one sentence into exactly one label by evaluating an
// ordered table of hand-written grammar rules over tagged tokens, falling
// back to an external statistical scorer (threshold-gated) when no rule
// fires.
//
// Usage:
//
//	# Classify a sentence against a rule file
//	sentra classify --rules rules.yaml "The court demands a response."
//
//	# Validate rule files without classifying
//	sentra validate --rules rules/
//
//	# Run the HTTP classification service
//	sentra serve --config /etc/sentra/config.yaml
//
//	# Import a TSV lexicon into the tagger database
//	sentra lexicon import --db lexicon.db lexicon.tsv
package main

func main() {
	Execute()
}
