// Package lexicon stores surface-form to (lemma, tag) mappings for the
// bundled tokenizer's tagger.
//
// Two Store implementations are provided: MemoryStore for tests and small
// embedded lexicons, and SQLiteStore for larger lexicons kept on disk.
// Stores are populated at configuration time (ImportTSV, Put) and read-only
// during classification. Classification results are never persisted here;
// the lexicon holds linguistic reference data only.
package lexicon
