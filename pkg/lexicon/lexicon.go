package lexicon

import "context"

// Entry maps a surface form to its normalized form and grammatical tag.
// Lookups are keyed by the lowercased surface form.
type Entry struct {
	Surface string
	Lemma   string
	Tag     string
}

// Store is a read-mostly lexicon: populated at configuration time (TSV
// import, code) and consulted by the tagger on every token. Lookup returns
// (nil, nil) for unknown surface forms; absence is not an error.
type Store interface {
	// Lookup returns the entry for a surface form, or nil if absent.
	Lookup(ctx context.Context, surface string) (*Entry, error)

	// Put inserts or replaces an entry.
	Put(ctx context.Context, entry Entry) error

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
