// Package token defines the boundary between the classification core and
// the external tokenization/tagging pipeline.
//
// The core treats tokens as opaque values: it passes the whole sequence to
// registered predicates and never looks inside. Real deployments plug in
// their own NLP pipeline behind the Source interface; pkg/tokenizer ships a
// simple deterministic implementation for tests, examples, and the CLI.
package token
